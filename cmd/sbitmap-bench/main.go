package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hupe1980/sbitmap"
	"github.com/hupe1980/sbitmap/bench"
	"github.com/hupe1980/sbitmap/internal/affinity"
)

func main() {
	app := cli.App{
		Name:        "sbitmap-bench",
		Description: "throughput benchmark for the sbitmap slot allocator",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "depth",
				Usage:   "bitmap depth in slots",
				Value:   32,
				EnvVars: []string{"SBITMAP_BENCH_DEPTH"},
			},
			&cli.IntFlag{
				Name:  "shift",
				Usage: "log2(bits per word), 0-6; derived from depth if unset",
				Value: -1,
			},
			&cli.DurationFlag{
				Name:  "time",
				Usage: "benchmark duration",
				Value: 10 * time.Second,
			},
			&cli.IntFlag{
				Name:  "tasks",
				Usage: "number of concurrent workers (default: CPUs - 1)",
			},
			&cli.IntFlag{
				Name:  "batch",
				Usage: "claim/release runs of this many contiguous slots",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "round-robin",
				Usage: "enable strict round-robin allocation order",
			},
			&cli.BoolFlag{
				Name:  "pin",
				Usage: "pin each worker to a CPU (Linux only)",
			},
			&cli.BoolFlag{
				Name:  "no-baseline",
				Usage: "skip the naive-bitmap baseline run",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error",
				Value: "info",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx *cli.Context) error {
	level, err := parseLevel(ctx.String("log-level"))
	if err != nil {
		return err
	}
	logger := sbitmap.NewTextLogger(level)

	opts := bench.Options{
		Depth:      ctx.Int("depth"),
		Duration:   ctx.Duration("time"),
		Workers:    ctx.Int("tasks"),
		BatchSize:  ctx.Int("batch"),
		RoundRobin: ctx.Bool("round-robin"),
		PinCPUs:    ctx.Bool("pin"),
		Logger:     logger,
	}
	if s := ctx.Int("shift"); s >= 0 {
		if s > 6 {
			return fmt.Errorf("shift must be in [0, 6], got %d", s)
		}
		opts.BitsPerWord = 1 << s
	}

	runner, err := bench.NewRunner(opts)
	if err != nil {
		return err
	}

	fmt.Printf("system: %d CPUs, %d NUMA node(s)\n", runtime.NumCPU(), affinity.NumNUMANodes())
	fmt.Printf("depth=%d batch=%d round-robin=%v pin=%v duration=%s\n\n",
		ctx.Int("depth"), ctx.Int("batch"), ctx.Bool("round-robin"), ctx.Bool("pin"), ctx.Duration("time"))

	report, err := runner.Run(ctx.Context)
	if err != nil {
		return err
	}
	fmt.Println(report)

	// Batch mode has no meaningful baseline: the naive bitmap only
	// supports single-bit operations.
	if ctx.Int("batch") <= 1 && !ctx.Bool("no-baseline") {
		baseline, err := runner.RunBaseline(ctx.Context)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(baseline)
	}

	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
