package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
	_ "go.uber.org/automaxprocs"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(app.ErrWriter, "xtree: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "xtree"
	app.Usage = "drive the balanced binary search trees from the command line"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "insert then delete keys in a tree, validating it after every mutation",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "variant, v",
					Value:  "rb",
					EnvVar: "XTREE_VARIANT",
					Usage:  " tree `VARIANT` [avl|rb|splay|bst|threaded]",
				},
				cli.StringFlag{
					Name:  "keys, k",
					Value: "",
					Usage: "+comma separated integer `KEYS`",
				},
				cli.IntFlag{
					Name:  "random, r",
					Value: 0,
					Usage: "+`COUNT` distinct keys in [0, COUNT) in shuffled order",
				},
				cli.Int64Flag{
					Name:  "seed, s",
					Value: 1,
					Usage: " shuffle `SEED` of the random keys and the deletions",
				},
				cli.Float64Flag{
					Name:  "delete-ratio, d",
					Value: 0,
					Usage: " `RATIO` of the inserted keys deleted afterwards [0, 1]",
				},
				cli.StringFlag{
					Name:  "metrics, m",
					Value: "none",
					Usage: " metrics `EXPORTER` [none|console|prometheus]",
				},
				cli.StringFlag{
					Name:   "log-level, l",
					Value:  "INFO",
					EnvVar: "XLOG_LVL",
					Usage:  " log `LEVEL` [DEBUG|INFO|WARN|ERROR]",
				},
				cli.StringFlag{
					Name:  "log-format, f",
					Value: "json",
					Usage: " log `FORMAT` [json|text]",
				},
				cli.BoolFlag{
					Name:  "sync",
					Usage: " wrap the tree with a mutex",
				},
			},
			Action: runTree,
		},
		{
			Name:   "variants",
			Usage:  "list the tree variants",
			Action: runVariants,
		},
	}
	return app
}
