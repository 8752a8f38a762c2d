package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "skillshare: %v\n", err)
		return 1
	}
	return 0
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "skillshare",
		Usage: "Propose, discuss and follow skill-sharing talks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default ~/.config/skillshare/config.toml)",
				EnvVars: []string{"SKILLSHARE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "server",
				Usage: "Override the talk server URL",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log at debug level",
			},
		},
		Action: runWatch,
		Commands: []*cli.Command{
			watchCommand(),
			listCommand(),
			submitCommand(),
			deleteCommand(),
			commentCommand(),
			nameCommand(),
			logsCommand(),
		},
	}
}
