// Package spawn measures how many fork+exit+reap cycles fit in a fixed
// wall-clock window.
package spawn

import (
	"time"

	"github.com/pkg/errors"

	"github.com/violenttestpen/syscost/internal/bench"
	"github.com/violenttestpen/syscost/internal/mono"
)

const (
	DefaultWindow = time.Second
	MinTrials     = 1
	MaxTrials     = 20

	ModeRaw  = "raw"
	ModeExec = "exec"

	DefaultCommand = "/bin/true"
)

// Forker creates a child that exits immediately with status 0 and reaps it.
type Forker interface {
	Fork() (pid int, err error)
	Reap(pid int) error
	String() string
}

// New returns the Forker for mode. cmdline is used by ModeExec only.
func New(mode, cmdline string) (Forker, error) {
	switch mode {
	case "", ModeRaw:
		return NewRawForker()
	case ModeExec:
		return NewExecForker(cmdline)
	default:
		return nil, errors.Errorf("unknown spawn mode %q (expecting %s or %s)", mode, ModeRaw, ModeExec)
	}
}

// ValidTrials reports whether n is an accepted trial count.
func ValidTrials(n int) bool { return n >= MinTrials && n <= MaxTrials }

// Count runs fork+reap cycles until the window has elapsed. A failed fork
// is retried until the deadline; a failed reap is fatal since the child
// cannot be accounted for.
func Count(f Forker, window time.Duration) (int64, error) {
	return bench.CountUntil(mono.NewDeadline(window), func() error {
		pid, err := f.Fork()
		if err != nil {
			return err
		}
		if err := f.Reap(pid); err != nil {
			return bench.Fatal(errors.Wrapf(err, "reap %d", pid))
		}
		return nil
	})
}

// Trial adapts Count to the harness.
func Trial(f Forker, window time.Duration) bench.Trial {
	return func() (bench.Result, error) {
		n, err := Count(f, window)
		if err != nil {
			return bench.Failed, err
		}
		return bench.Result(n), nil
	}
}
