package bench

import (
	"context"
	"fmt"
	"math/bits"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/sbitmap"
	"github.com/hupe1980/sbitmap/internal/affinity"
)

// Allocator is the surface the harness drives. *sbitmap.Bitmap and
// *NaiveBitmap both satisfy it.
type Allocator interface {
	Get(h *sbitmap.Hint) (int, bool)
	Put(slot int, h *sbitmap.Hint)
	Weight() int
}

// batchAllocator is satisfied by allocators supporting contiguous-run
// operations; batch workloads require it.
type batchAllocator interface {
	Allocator
	GetBatch(n int, h *sbitmap.Hint) (int, bool)
	PutBatch(slot, n int, h *sbitmap.Hint)
}

// Options configures a benchmark run.
type Options struct {
	// Depth is the pool size in slots.
	Depth int

	// BitsPerWord pins the word granularity and must be a power of two
	// in [1, 64]. Zero derives it from Depth.
	BitsPerWord int

	// Duration is how long the workers run.
	Duration time.Duration

	// Workers is the number of concurrent callers.
	Workers int

	// BatchSize > 1 switches workers to GetBatch/PutBatch pairs of
	// that many contiguous slots.
	BatchSize int

	// RoundRobin enables strict sequential allocation order.
	RoundRobin bool

	// PinCPUs binds each worker to a logical CPU (Linux only).
	PinCPUs bool

	// Logger receives progress and diagnostic output. Nil disables it.
	Logger *sbitmap.Logger
}

// DefaultOptions mirrors the reference benchmark defaults: a 32 slot
// pool, auto word sizing, 10 seconds, one worker per CPU minus one for
// the coordinator.
func DefaultOptions() Options {
	workers := runtime.NumCPU() - 1
	if workers < 1 {
		workers = 1
	}

	return Options{
		Depth:     32,
		Duration:  10 * time.Second,
		Workers:   workers,
		BatchSize: 1,
	}
}

// Runner executes benchmark workloads.
type Runner struct {
	opts   Options
	logger *sbitmap.Logger
}

// NewRunner validates opts (falling back to defaults for zero values)
// and returns a Runner.
func NewRunner(opts Options) (*Runner, error) {
	def := DefaultOptions()

	if opts.Depth == 0 {
		opts.Depth = def.Depth
	}
	if opts.Depth < 0 {
		return nil, fmt.Errorf("bench: invalid depth %d", opts.Depth)
	}
	if opts.Duration <= 0 {
		opts.Duration = def.Duration
	}
	if opts.Workers == 0 {
		opts.Workers = def.Workers
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("bench: invalid worker count %d", opts.Workers)
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = 1
	}
	if opts.BatchSize < 0 {
		return nil, fmt.Errorf("bench: invalid batch size %d", opts.BatchSize)
	}
	if bpw := opts.BitsPerWord; bpw < 0 || bpw > 64 || bpw&(bpw-1) != 0 {
		return nil, fmt.Errorf("bench: bits per word must be a power of two in [1, 64], got %d", bpw)
	}

	logger := opts.Logger
	if logger == nil {
		logger = sbitmap.NoopLogger()
	}

	return &Runner{opts: opts, logger: logger}, nil
}

// Run benchmarks the sbitmap allocator and returns its report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	bmOpts := []sbitmap.Option{
		sbitmap.WithRoundRobin(r.opts.RoundRobin),
		sbitmap.WithLogger(r.logger),
	}
	if r.opts.BitsPerWord != 0 {
		bmOpts = append(bmOpts, sbitmap.WithShift(bits.TrailingZeros(uint(r.opts.BitsPerWord))))
	}

	bm, err := sbitmap.New(r.opts.Depth, bmOpts...)
	if err != nil {
		return nil, err
	}

	if r.opts.BatchSize > bm.BitsPerWord() {
		return nil, fmt.Errorf("bench: batch size %d exceeds bits per word %d",
			r.opts.BatchSize, bm.BitsPerWord())
	}

	return r.run(ctx, "sbitmap", bm)
}

// RunBaseline benchmarks the naive unpadded bitmap for comparison.
// The baseline supports single-bit mode only.
func (r *Runner) RunBaseline(ctx context.Context) (*Report, error) {
	if r.opts.BatchSize > 1 {
		return nil, fmt.Errorf("bench: baseline does not support batch mode")
	}
	return r.run(ctx, "naive", NewNaiveBitmap(r.opts.Depth))
}

func (r *Runner) run(ctx context.Context, name string, alloc Allocator) (*Report, error) {
	if r.opts.BatchSize > 1 {
		if _, ok := alloc.(batchAllocator); !ok {
			return nil, fmt.Errorf("bench: %s does not support batch mode", name)
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, r.opts.Duration)
	defer cancel()

	start := time.Now()
	deadline := start.Add(r.opts.Duration)
	stats := make([]WorkerStats, r.opts.Workers)

	g, gctx := errgroup.WithContext(runCtx)

	for i := 0; i < r.opts.Workers; i++ {
		i := i
		g.Go(func() error {
			stats[i] = WorkerStats{ID: i, Ops: r.worker(gctx, i, alloc, deadline)}
			return nil
		})
	}

	// Progress sampling, throttled to once per second regardless of
	// how often the loop wakes up.
	g.Go(func() error {
		limiter := rate.NewLimiter(rate.Every(time.Second), 1)
		for {
			if err := limiter.Wait(gctx); err != nil {
				return nil
			}
			r.logger.Debug("benchmark progress", "name", name, "weight", alloc.Weight())
		}
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	if elapsed > r.opts.Duration {
		elapsed = r.opts.Duration
	}

	report := &Report{
		Name:    name,
		Elapsed: elapsed,
		Workers: stats,
	}
	for _, s := range stats {
		report.TotalOps += s.Ops
	}

	leak := alloc.Weight()
	r.logger.Info("benchmark finished",
		"name", name,
		"ops", report.TotalOps,
		"ops_per_sec", int64(report.OpsPerSec()),
		"leaked_slots", leak,
	)

	return report, nil
}

// worker performs get/put (or batch) pairs until the deadline. One
// operation is a successful get immediately followed by its put.
func (r *Runner) worker(ctx context.Context, id int, alloc Allocator, deadline time.Time) int64 {
	if r.opts.PinCPUs && affinity.Supported() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if err := affinity.Pin(id % runtime.NumCPU()); err != nil {
			r.logger.Warn("cpu pin failed", "worker", id, "error", err)
		}
	}

	hint := sbitmap.SeededHint(r.opts.Depth)

	// The ctx check is amortized; querying it every iteration would
	// show up in the measured loop.
	var ops, iter int64
	if r.opts.BatchSize > 1 {
		ba := alloc.(batchAllocator)
		n := r.opts.BatchSize
		for time.Now().Before(deadline) {
			if slot, ok := ba.GetBatch(n, hint); ok {
				ba.PutBatch(slot, n, hint)
				ops++
			}
			if iter++; iter&1023 == 0 && ctx.Err() != nil {
				break
			}
		}
		return ops
	}

	for time.Now().Before(deadline) {
		if slot, ok := alloc.Get(hint); ok {
			alloc.Put(slot, hint)
			ops++
		}
		if iter++; iter&1023 == 0 && ctx.Err() != nil {
			break
		}
	}
	return ops
}
