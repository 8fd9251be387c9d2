package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/violenttestpen/syscost/internal/chanrate"
	"github.com/violenttestpen/syscost/internal/dropcache"
	"github.com/violenttestpen/syscost/internal/fileread"
	"github.com/violenttestpen/syscost/internal/report"
	"github.com/violenttestpen/syscost/internal/runner"
	"github.com/violenttestpen/syscost/internal/spawn"
	"github.com/violenttestpen/syscost/internal/threads"
	"github.com/violenttestpen/syscost/internal/units"
)

var (
	noColorFlag = cli.BoolFlag{Name: "no-color", Usage: "disable coloured output"}

	trialsFlag  = cli.IntFlag{Name: "trials", Value: fileread.DefaultTrials, Usage: "number of trials"}
	windowFlag  = cli.DurationFlag{Name: "window", Value: spawn.DefaultWindow, Usage: "measurement window per trial"}
	sizesFlag   = cli.StringFlag{Name: "sizes", Usage: "comma-separated buffer sizes to sweep, e.g. 4KiB,1MiB"}
	spawnFlag   = cli.StringFlag{Name: "spawn", Value: spawn.ModeRaw, Usage: "how children are created: raw or exec"}
	cmdFlag     = cli.StringFlag{Name: "cmd", Value: spawn.DefaultCommand, Usage: "command run by each child in exec mode"}
	modeFlag    = cli.StringFlag{Name: "mode", Value: string(threads.ModeThread), Usage: "what each cycle creates: thread or goroutine"}
	workersFlag = cli.IntFlag{Name: "workers", Value: fileread.DefaultWorkers(), Usage: "number of concurrent pread workers"}
	dropFlag    = cli.StringFlag{Name: "drop", Value: "none", Usage: "cache drop after each trial: none, proc, or fadvise"}
	coldFlag    = cli.BoolFlag{Name: "cold", Usage: "measure uncached reads: one trial, proc cache drop unless --drop is given"}
	runsFlag    = cli.IntFlag{Name: "runs", Value: chanrate.DefaultRuns, Usage: "number of runs"}

	commands = []cli.Command{
		{
			Name:      "buffersize",
			Usage:     "sequential read time of a file across read buffer sizes",
			ArgsUsage: "FILENAME",
			Flags:     []cli.Flag{trialsFlag, sizesFlag},
			Action:    bufferSizeHandler,
		},
		{
			Name:   "fork",
			Usage:  "processes forked, exited and reaped per window",
			Flags:  []cli.Flag{forkTrialsFlag, windowFlag, spawnFlag, cmdFlag},
			Action: forkHandler,
		},
		{
			Name:   "thread",
			Usage:  "threads created and joined per window",
			Flags:  []cli.Flag{windowFlag, modeFlag},
			Action: threadHandler,
		},
		{
			Name:      "pread",
			Usage:     "single-threaded read vs concurrent pread of a file",
			ArgsUsage: "FILENAME BUFFER_SIZE",
			Flags:     []cli.Flag{trialsFlag, workersFlag, dropFlag, coldFlag},
			Action:    preadHandler,
		},
		{
			Name:   "chan",
			Usage:  "unbuffered channel hand-off rate and latency",
			Flags:  []cli.Flag{runsFlag, cli.DurationFlag{Name: windowFlag.Name, Value: chanrate.DefaultWindow, Usage: windowFlag.Usage}},
			Action: chanHandler,
		},
	}

	forkTrialsFlag = cli.IntFlag{Name: "trials", Value: 10, Usage: "number of trials, 1 to 20"}
)

func missingArgumentsError(c *cli.Context, what string) error {
	return cli.NewExitError(errors.Errorf("%q: missing %s (see '%s --help')", c.Command.Name, what, c.Command.FullName()), 1)
}

func benchmarkError(err error) error {
	return cli.NewExitError(errors.Wrap(err, "an error occurred during benchmark"), 1)
}

func bufferSizeHandler(c *cli.Context) error {
	if c.NArg() != 1 {
		return missingArgumentsError(c, "file name")
	}
	sweep := fileread.DefaultSweep
	if s := c.String(sizesFlag.Name); s != "" {
		var err error
		if sweep, err = units.ParseSizes(s); err != nil {
			return err
		}
	}
	trials := c.Int(trialsFlag.Name)
	if trials < 1 {
		return errors.Errorf("invalid number of trials: %d", trials)
	}
	if err := runner.BufferSweep(report.New(), c.Args().First(), sweep, trials); err != nil {
		return benchmarkError(err)
	}
	return nil
}

func forkHandler(c *cli.Context) error {
	trials := c.Int(forkTrialsFlag.Name)
	if !spawn.ValidTrials(trials) {
		return errors.Errorf("invalid number of trials: %d (expecting %d to %d)", trials, spawn.MinTrials, spawn.MaxTrials)
	}
	f, err := spawn.New(c.String(spawnFlag.Name), c.String(cmdFlag.Name))
	if err != nil {
		return err
	}
	if err := runner.ForkRate(report.New(), f, trials, c.Duration(windowFlag.Name)); err != nil {
		return benchmarkError(err)
	}
	return nil
}

func threadHandler(c *cli.Context) error {
	mode, err := threads.ParseMode(c.String(modeFlag.Name))
	if err != nil {
		return err
	}
	runner.ThreadRate(report.New(), threads.Config{Mode: mode, Window: c.Duration(windowFlag.Name)}, threads.DefaultTrials)
	return nil
}

func preadHandler(c *cli.Context) error {
	if c.NArg() != 2 {
		return missingArgumentsError(c, "file name and buffer size")
	}
	bufSize, err := units.ParseSize(c.Args().Get(1))
	if err != nil {
		return err
	}
	trials, mode := c.Int(trialsFlag.Name), c.String(dropFlag.Name)
	if c.Bool(coldFlag.Name) {
		if !c.IsSet(trialsFlag.Name) {
			trials = 1
		}
		if !c.IsSet(dropFlag.Name) {
			mode = "proc"
		}
	}
	if trials < 1 {
		return errors.Errorf("invalid number of trials: %d", trials)
	}
	dropper, err := dropcache.New(mode)
	if err != nil {
		return err
	}
	cfg := fileread.Config{
		Path:    c.Args().First(),
		BufSize: int(bufSize),
		Workers: c.Int(workersFlag.Name),
		Dropper: dropper,
	}
	if err := runner.PreadVsRead(report.New(), cfg, trials); err != nil {
		return benchmarkError(err)
	}
	return nil
}

func chanHandler(c *cli.Context) error {
	runs := c.Int(runsFlag.Name)
	if runs < 1 {
		return errors.Errorf("invalid number of runs: %d", runs)
	}
	runner.ChanRate(report.New(), c.Duration(windowFlag.Name), runs)
	return nil
}
