// Package runner drives each benchmark through the harness and prints its
// report. Returned errors are always fatal: the caller prints them and exits.
package runner

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/violenttestpen/syscost/internal/bench"
	"github.com/violenttestpen/syscost/internal/chanrate"
	"github.com/violenttestpen/syscost/internal/fileread"
	"github.com/violenttestpen/syscost/internal/report"
	"github.com/violenttestpen/syscost/internal/spawn"
	"github.com/violenttestpen/syscost/internal/threads"
	"github.com/violenttestpen/syscost/internal/units"
)

// BufferSweep averages trials sequential reads of path for every size.
// A size without a single successful trial is reported and skipped.
func BufferSweep(r *report.Reporter, path string, sizes []int64, trials int) error {
	for _, size := range sizes {
		set, err := bench.Repeat(trials, fileread.SweepTrial(path, int(size)), r.Observer(true))
		r.ClearLine()
		if err != nil {
			return errors.Wrapf(err, "buffer size %d", size)
		}
		mean, ok := set.Mean()
		if !ok {
			r.Failure("Failed to benchmark with buffer size: %d", size)
			continue
		}
		r.Printf("Buffer size: %d bytes -> Average Time: %s ms over %d runs\n",
			size, greenf("%.2f", mean), len(set.Succeeded()))
	}
	return nil
}

// ForkRate prints one line per trial and the mean fork+reap rate.
func ForkRate(r *report.Reporter, f spawn.Forker, trials int, window time.Duration) error {
	set, err := bench.Repeat(trials, spawn.Trial(f, window), func(done, _ int, set bench.TrialSet) {
		r.Printf("Trial %d: %d processes created and destroyed in %s.\n", done, set[done-1], window)
	})
	if err != nil {
		return errors.Wrapf(err, "trial %d", len(set)+1)
	}
	r.Printf("\n\n\n")
	r.Divider()
	mean, _ := set.Mean()
	r.Printf("Average number of processes created and destroyed per %s: %s\n", per(window), greenf("%.2f", mean))
	r.Summary(set, "forks")
	return nil
}

// ThreadRate prints one line per trial and the mean create+join rate.
func ThreadRate(r *report.Reporter, cfg threads.Config, trials int) {
	set := threads.Run(cfg, trials, func(done, _ int, set bench.TrialSet) {
		r.Printf("Run %d: %d threads created/destroyed\n", done, set[done-1])
	})
	mean, _ := set.Mean()
	window := cfg.Window
	if window <= 0 {
		window = threads.DefaultWindow
	}
	r.Printf("\nAverage over %d runs: %s threads/%s\n", trials, greenf("%.2f", mean), per(window))
	r.Summary(set, "threads")
}

// PreadVsRead compares the single-worker read baseline with concurrent
// pread over cfg.Workers partitions.
func PreadVsRead(r *report.Reporter, cfg fileread.Config, trials int) error {
	if cfg.Workers < 1 {
		cfg.Workers = fileread.DefaultWorkers()
	}

	r.Header("%s: %s buffer, %d pread workers", cfg.Path, units.ToSizeIEC(int64(cfg.BufSize)), cfg.Workers)
	r.Println("Benchmarking read (single-thread)...")
	set, err := bench.Repeat(trials, cfg.SequentialTrial(), r.Observer(true))
	r.ClearLine()
	if err != nil {
		return errors.Wrap(err, "read")
	}
	printAverage(r, "read, 1 thread", set)
	r.Println()

	r.Printf("Benchmarking pread (multi-thread, %d threads)...\n", cfg.Workers)
	set, err = bench.Repeat(trials, cfg.ConcurrentTrial(), r.Observer(true))
	r.ClearLine()
	if err != nil {
		return errors.Wrap(err, "pread")
	}
	printAverage(r, fmt.Sprintf("pread, %d threads", cfg.Workers), set)
	return nil
}

func printAverage(r *report.Reporter, label string, set bench.TrialSet) {
	mean, ok := set.Mean()
	if !ok {
		r.Failure("Average time (%s): failed, no successful trials out of %d", label, len(set))
		return
	}
	r.Printf("Average time (%s): %s ms\n", label, greenf("%.2f", mean))
	r.Summary(set, "ms")
}

// ChanRate prints per-run channel hand-off stats and their averages.
func ChanRate(r *report.Reporter, window time.Duration, runs int) {
	all := make([]chanrate.Stats, 0, runs)
	for i := 1; i <= runs; i++ {
		r.Printf("Run #%d...\n", i)
		s := chanrate.Measure(window)
		r.Printf("  Messages: %d, Send Latency: %.3f µs, Receive Latency: %.3f µs\n",
			s.Messages, chanrate.Micros(s.SendLatency), chanrate.Micros(s.RecvLatency))
		all = append(all, s)
	}
	avg := chanrate.Average(all)
	r.Header("\n===== Average Results over %d runs =====", runs)
	r.Printf("Average Messages: %s\n", greenf("%d", avg.Messages))
	r.Printf("Average Send Latency: %s µs\n", greenf("%.3f", chanrate.Micros(avg.SendLatency)))
	r.Printf("Average Receive Latency: %s µs\n", greenf("%.3f", chanrate.Micros(avg.RecvLatency)))
}
