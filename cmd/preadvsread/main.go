// preadvsread compares single-threaded sequential read(2) with concurrent
// pread(2) of the same file across all cores.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/golang/glog"

	"github.com/violenttestpen/syscost/internal/dropcache"
	"github.com/violenttestpen/syscost/internal/fileread"
	"github.com/violenttestpen/syscost/internal/report"
	"github.com/violenttestpen/syscost/internal/runner"
	"github.com/violenttestpen/syscost/internal/units"
)

var (
	workers   int
	trials    int
	dropMode  string
	coldCache bool
	noColor   bool
)

func main() {
	flag.IntVar(&workers, "workers", fileread.DefaultWorkers(), "Number of concurrent pread workers")
	flag.IntVar(&trials, "trials", fileread.DefaultTrials, "Number of trials per read method (1 with -cold)")
	flag.StringVar(&dropMode, "drop", "none", "Cache drop after each trial: none, proc (needs root), or fadvise")
	flag.BoolVar(&coldCache, "cold", false, "Measure uncached reads: one trial, dropping caches after it (proc unless -drop is given)")
	flag.BoolVar(&noColor, "no-color", false, "Disable coloured output")
	flag.Set("logtostderr", "true")
	flag.Parse()

	color.NoColor = color.NoColor || noColor
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	status := run(flag.Args(), set, report.New(), os.Stderr)
	glog.Flush()
	os.Exit(status)
}

func usage(stderr io.Writer) int {
	fmt.Fprintf(stderr, "Usage: %s <filename> <buffersize>(bytes unit)\n", os.Args[0])
	return 1
}

// run takes the names of explicitly set flags so -cold only changes
// defaults.
func run(args []string, explicit map[string]bool, r *report.Reporter, stderr io.Writer) int {
	if len(args) != 2 {
		return usage(stderr)
	}
	bufSize, err := units.ParseSize(args[1])
	if err != nil {
		fmt.Fprintln(stderr, err)
		return usage(stderr)
	}

	n, mode := trials, dropMode
	if coldCache {
		if !explicit["trials"] {
			n = 1
		}
		if !explicit["drop"] {
			mode = "proc"
		}
	}
	if n < 1 {
		fmt.Fprintf(stderr, "invalid number of trials: %d\n", n)
		return 1
	}
	dropper, err := dropcache.New(mode)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	cfg := fileread.Config{Path: args[0], BufSize: int(bufSize), Workers: workers, Dropper: dropper}
	if err := runner.PreadVsRead(r, cfg, n); err != nil {
		fmt.Fprintln(stderr, "An error occurred during benchmark:", err)
		return 1
	}
	return 0
}
