// threadrate counts how many threads can be created and joined per second.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/violenttestpen/syscost/internal/report"
	"github.com/violenttestpen/syscost/internal/runner"
	"github.com/violenttestpen/syscost/internal/threads"
)

var (
	mode    string
	window  time.Duration
	noColor bool
)

func main() {
	flag.StringVar(&mode, "mode", string(threads.ModeThread), "What each cycle creates: thread (a fresh OS thread) or goroutine")
	flag.DurationVar(&window, "window", threads.DefaultWindow, "Measurement window per trial")
	flag.BoolVar(&noColor, "no-color", false, "Disable coloured output")
	flag.Parse()

	color.NoColor = color.NoColor || noColor
	m, err := threads.ParseMode(mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	runner.ThreadRate(report.New(), threads.Config{Mode: m, Window: window}, threads.DefaultTrials)
}
