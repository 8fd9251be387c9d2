// buffersize measures whole-file sequential read time across a sweep of
// read buffer sizes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/golang/glog"

	"github.com/violenttestpen/syscost/internal/fileread"
	"github.com/violenttestpen/syscost/internal/report"
	"github.com/violenttestpen/syscost/internal/runner"
	"github.com/violenttestpen/syscost/internal/units"
)

var (
	trials  int
	sizes   string
	noColor bool
)

func main() {
	flag.IntVar(&trials, "trials", fileread.DefaultTrials, "Number of trials per buffer size")
	flag.StringVar(&sizes, "sizes", "", "Comma-separated buffer sizes to sweep, e.g. 4KiB,1MiB (default: 1B to 1MiB)")
	flag.BoolVar(&noColor, "no-color", false, "Disable coloured output")
	flag.Set("logtostderr", "true")
	flag.Parse()

	color.NoColor = color.NoColor || noColor
	status := run(flag.Args(), report.New(), os.Stderr)
	glog.Flush()
	os.Exit(status)
}

func run(args []string, r *report.Reporter, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintf(stderr, "Usage: %s <filename>\n", os.Args[0])
		return 1
	}
	sweep := fileread.DefaultSweep
	if sizes != "" {
		var err error
		if sweep, err = units.ParseSizes(sizes); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if trials < 1 {
		fmt.Fprintf(stderr, "invalid number of trials: %d\n", trials)
		return 1
	}
	if err := runner.BufferSweep(r, args[0], sweep, trials); err != nil {
		fmt.Fprintln(stderr, "An error occurred during benchmark:", err)
		return 1
	}
	return 0
}
