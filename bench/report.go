package bench

import (
	"fmt"
	"strings"
	"time"
)

// WorkerStats holds one worker's operation count.
type WorkerStats struct {
	ID  int
	Ops int64
}

// Report aggregates a benchmark run.
type Report struct {
	Name     string
	Elapsed  time.Duration
	Workers  []WorkerStats
	TotalOps int64
}

// OpsPerSec returns the aggregate throughput.
func (r *Report) OpsPerSec() float64 {
	secs := r.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.TotalOps) / secs
}

// String renders per-worker and total throughput.
func (r *Report) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "=== %s ===\n", r.Name)

	secs := r.Elapsed.Seconds()
	for _, w := range r.Workers {
		var perSec float64
		if secs > 0 {
			perSec = float64(w.Ops) / secs
		}
		fmt.Fprintf(&sb, "  worker %d: %d ops, %.0f ops/sec (%.4f Mops/sec)\n",
			w.ID, w.Ops, perSec, perSec/1e6)
	}

	total := r.OpsPerSec()
	fmt.Fprintf(&sb, "  total: %d ops, %.0f ops/sec (%.4f Mops/sec)",
		r.TotalOps, total, total/1e6)

	return sb.String()
}
