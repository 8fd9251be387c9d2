// Package report prints benchmark progress and results to the console.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/violenttestpen/syscost/internal/bench"
	"github.com/violenttestpen/syscost/internal/units"
)

const (
	progressDoneRune    = "█"
	progressPendingRune = "▒"
)

// Reporter writes colored output. Progress lines are drawn only when the
// output is a terminal.
type Reporter struct {
	w        io.Writer
	fd       int
	terminal bool
}

// New returns a Reporter on color.Output, which honors color.NoColor.
func New() *Reporter {
	fd := int(os.Stdout.Fd())
	return &Reporter{w: color.Output, fd: fd, terminal: term.IsTerminal(fd)}
}

// NewWriter returns a Reporter that never draws progress lines.
func NewWriter(w io.Writer) *Reporter { return &Reporter{w: w, fd: -1} }

func (r *Reporter) Writer() io.Writer { return r.w }

func (r *Reporter) Printf(format string, args ...any) { fmt.Fprintf(r.w, format, args...) }

func (r *Reporter) Println(args ...any) { fmt.Fprintln(r.w, args...) }

// Header prints a highlighted section title.
func (r *Reporter) Header(format string, args ...any) {
	fmt.Fprintln(r.w, color.New(color.Bold).Sprintf(format, args...))
}

// Divider separates per-trial lines from the aggregate.
func (r *Reporter) Divider() {
	fmt.Fprintln(r.w, color.HiBlackString(strings.Repeat("=", 64)))
}

// Failure prints a failed configuration in red.
func (r *Reporter) Failure(format string, args ...any) {
	fmt.Fprintln(r.w, color.RedString(format, args...))
}

func (r *Reporter) ClearLine() {
	if r.terminal {
		clearCurrentTerminalLine(r.w)
	}
}

// Observer returns a bench.Observer drawing the running estimate and an
// ETA. Results are interpreted as milliseconds when durations is true,
// otherwise as plain counts.
func (r *Reporter) Observer(durations bool) bench.Observer {
	if !r.terminal {
		return nil
	}
	started := time.Now()
	return func(done, total int, set bench.TrialSet) {
		var estimate string
		mean, ok := set.Mean()
		switch {
		case !ok:
			estimate = color.RedString("n/a")
		case durations:
			estimate = color.GreenString("%.2f ms", mean)
		default:
			estimate = color.GreenString("%.0f", mean)
		}
		perTrial := time.Since(started) / time.Duration(done)
		eta := perTrial * time.Duration(total-done)

		clearCurrentTerminalLine(r.w)
		if done == total {
			return
		}
		r.printProgressLine(fmt.Sprintf("Current estimate: %s ", estimate), float64(done)/float64(total), eta)
	}
}

// Summary prints mean ± σ and the min … max range of a trial set. Results
// in "ms" are rescaled to the best-fitting time unit.
func (r *Reporter) Summary(set bench.TrialSet, unit string) {
	mean, ok := set.Mean()
	if !ok {
		r.Failure("  no successful trials out of %d", len(set))
		return
	}
	lo, _ := set.Min()
	hi, _ := set.Max()
	format := func(v float64) string { return fmt.Sprintf("%.2f %s", v, unit) }
	if unit == "ms" {
		format = func(v float64) string { return units.Duration(time.Duration(v * float64(time.Millisecond))) }
	}
	fmt.Fprintf(r.w, "  %s (%s ± %s):\t%s ± %s\n",
		unitTitle(unit),
		color.GreenString("mean"),
		color.GreenString("σ"),
		color.GreenString("%s", format(mean)),
		color.GreenString("%s", format(set.Stdev())))
	fmt.Fprintf(r.w, "  Range (%s … %s):\t%s … %s\t%s\n",
		color.CyanString("min"),
		color.RedString("max"),
		color.CyanString("%s", format(float64(lo))),
		color.RedString("%s", format(float64(hi))),
		color.HiBlackString("%d of %d runs", len(set.Succeeded()), len(set)))
}

func unitTitle(unit string) string {
	if unit == "ms" {
		return "Time"
	}
	return "Rate"
}

func clearCurrentTerminalLine(w io.Writer) {
	w.Write([]byte("\r\033[K"))
}

func (r *Reporter) printProgressLine(line string, progress float64, eta time.Duration) {
	terminalWidth, _, err := term.GetSize(r.fd)
	if err != nil {
		return
	}
	terminalWidth -= len(line) + 2 + 12
	if terminalWidth <= 0 {
		return
	}
	progressChunks := int(progress * float64(terminalWidth))
	progressLine := strings.Repeat(progressDoneRune, progressChunks)
	progressLine += strings.Repeat(progressPendingRune, terminalWidth-progressChunks)

	fmt.Fprintf(r.w, "%s %s ETA %02d:%02d:%02d", line, progressLine,
		int64(eta.Hours()), int64(eta.Minutes())%60, int64(eta.Seconds())%60)
}
