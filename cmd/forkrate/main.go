// forkrate counts how many processes can be forked, exited and reaped per
// second.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/golang/glog"

	"github.com/violenttestpen/syscost/internal/report"
	"github.com/violenttestpen/syscost/internal/runner"
	"github.com/violenttestpen/syscost/internal/spawn"
)

var (
	spawnMode string
	spawnCmd  string
	window    time.Duration
	noColor   bool
)

func main() {
	flag.StringVar(&spawnMode, "spawn", spawn.ModeRaw, "How children are created: raw (clone, exit at once) or exec (fork/exec -cmd)")
	flag.StringVar(&spawnCmd, "cmd", spawn.DefaultCommand, "Command run by each child in exec mode")
	flag.DurationVar(&window, "window", spawn.DefaultWindow, "Measurement window per trial")
	flag.BoolVar(&noColor, "no-color", false, "Disable coloured output")
	flag.Set("logtostderr", "true")
	flag.Parse()

	color.NoColor = color.NoColor || noColor
	status := run(flag.Args(), report.New(), os.Stderr)
	glog.Flush()
	os.Exit(status)
}

// parseTrials expects "<ignored> <trial-count>" with the count in [1,20].
func parseTrials(args []string) (int, bool) {
	if len(args) != 2 {
		return 0, false
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || !spawn.ValidTrials(n) {
		return 0, false
	}
	return n, true
}

// Bad arguments exit quietly with status 0.
func run(args []string, r *report.Reporter, stderr io.Writer) int {
	trials, ok := parseTrials(args)
	if !ok {
		return 0
	}
	f, err := spawn.New(spawnMode, spawnCmd)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := runner.ForkRate(r, f, trials, window); err != nil {
		fmt.Fprintln(stderr, "An error occurred during benchmark:", err)
		return 1
	}
	return 0
}
