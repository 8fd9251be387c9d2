// chanrate measures message hand-off rate and latency over an unbuffered
// channel between two goroutines.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/violenttestpen/syscost/internal/chanrate"
	"github.com/violenttestpen/syscost/internal/report"
	"github.com/violenttestpen/syscost/internal/runner"
)

var (
	runs    int
	window  time.Duration
	noColor bool
)

func main() {
	flag.IntVar(&runs, "runs", chanrate.DefaultRuns, "Number of runs")
	flag.DurationVar(&window, "window", chanrate.DefaultWindow, "Measurement window per run")
	flag.BoolVar(&noColor, "no-color", false, "Disable coloured output")
	flag.Parse()

	color.NoColor = color.NoColor || noColor
	if runs < 1 {
		fmt.Fprintf(os.Stderr, "invalid number of runs: %d\n", runs)
		os.Exit(1)
	}
	runner.ChanRate(report.New(), window, runs)
}
