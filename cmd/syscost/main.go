// syscost runs any of the OS primitive microbenchmarks as a subcommand.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/urfave/cli"
)

const version = "0.1.0"

func main() {
	flag.Set("logtostderr", "true")
	err := newApp().Run(os.Args)
	glog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "syscost"
	app.Usage = "measure the cost of operating system primitives"
	app.Version = version
	app.Flags = []cli.Flag{noColorFlag}
	app.Before = func(c *cli.Context) error {
		color.NoColor = color.NoColor || c.Bool(noColorFlag.Name)
		return nil
	}
	app.Commands = commands
	return app
}
