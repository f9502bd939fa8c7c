package bench

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReport_OpsPerSec(t *testing.T) {
	r := &Report{
		Name:     "sbitmap",
		Elapsed:  2 * time.Second,
		TotalOps: 1000,
	}
	assert.InDelta(t, 500.0, r.OpsPerSec(), 0.001)

	empty := &Report{Name: "sbitmap"}
	assert.Zero(t, empty.OpsPerSec())
}

func TestReport_String(t *testing.T) {
	r := &Report{
		Name:    "sbitmap",
		Elapsed: time.Second,
		Workers: []WorkerStats{
			{ID: 0, Ops: 100},
			{ID: 1, Ops: 200},
		},
		TotalOps: 300,
	}

	s := r.String()
	assert.True(t, strings.HasPrefix(s, "=== sbitmap ==="))
	assert.Contains(t, s, "worker 0: 100 ops")
	assert.Contains(t, s, "worker 1: 200 ops")
	assert.Contains(t, s, "total: 300 ops")
}
