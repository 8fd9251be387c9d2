// Package threads measures how many thread create+join cycles fit in a
// fixed wall-clock window.
package threads

import (
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/violenttestpen/syscost/internal/bench"
	"github.com/violenttestpen/syscost/internal/mono"
)

const (
	DefaultWindow = time.Second
	DefaultTrials = 10
)

// Mode selects what a cycle creates.
type Mode string

const (
	// ModeThread pins an empty goroutine to its OS thread and returns
	// without unlocking, so the runtime tears the thread down; every cycle
	// costs a native thread exit and a replacement.
	ModeThread Mode = "thread"
	// ModeGoroutine creates and joins a plain goroutine.
	ModeGoroutine Mode = "goroutine"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeThread:
		return ModeThread, nil
	case ModeGoroutine:
		return ModeGoroutine, nil
	default:
		return "", errors.Errorf("unknown thread mode %q (expecting %s or %s)", s, ModeThread, ModeGoroutine)
	}
}

type Config struct {
	Mode   Mode
	Window time.Duration
}

func (cfg Config) window() time.Duration {
	if cfg.Window <= 0 {
		return DefaultWindow
	}
	return cfg.Window
}

// spawnJoin starts one empty unit of work and blocks until it is done.
func spawnJoin(mode Mode) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if mode == ModeThread {
			runtime.LockOSThread()
		}
	}()
	wg.Wait()
}

// Count creates and joins units of work until the window has elapsed,
// using the same deadline policy as the fork benchmark.
func Count(cfg Config) int64 {
	mode := cfg.Mode
	if mode == "" {
		mode = ModeThread
	}
	n, _ := bench.CountUntil(mono.NewDeadline(cfg.window()), func() error {
		spawnJoin(mode)
		return nil
	})
	return n
}

// Run performs trials independent measurements.
func Run(cfg Config, trials int, observe bench.Observer) bench.TrialSet {
	set, _ := bench.Repeat(trials, func() (bench.Result, error) {
		return bench.Result(Count(cfg)), nil
	}, observe)
	return set
}
