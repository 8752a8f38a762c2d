package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/five82/skillshare/internal/app"
	"github.com/five82/skillshare/internal/config"
	"github.com/five82/skillshare/internal/logging"
	"github.com/five82/skillshare/internal/logtail"
	"github.com/five82/skillshare/internal/state"
	"github.com/five82/skillshare/internal/talks"
)

// setup loads config and installs the logger for the given mode.
func setup(c *cli.Context, mode logging.Mode) (config.Config, func() error, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	if server := strings.TrimSpace(c.String("server")); server != "" {
		cfg.ServerURL = server
	}
	if c.Bool("verbose") {
		cfg.LogLevel = "debug"
	}
	closeLog, err := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Mode: mode})
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logging: %w", err)
	}
	return cfg, closeLog, nil
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:   "watch",
		Usage:  "Open the live talk list (default)",
		Action: runWatch,
	}
}

func runWatch(c *cli.Context) error {
	cfg, closeLog, err := setup(c, logging.ModeTUI)
	if err != nil {
		return err
	}
	defer closeLog()
	return app.Run(c.Context, cfg)
}

// oneshot runs actions against a freshly fetched state.
func oneshot(c *cli.Context, actions ...state.Action) (state.AppState, error) {
	cfg, closeLog, err := setup(c, logging.ModeCLI)
	if err != nil {
		return state.AppState{}, err
	}
	defer closeLog()
	return app.Oneshot(c.Context, cfg, actions...)
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print the current talks",
		Action: func(c *cli.Context) error {
			st, err := oneshot(c)
			if err != nil {
				return err
			}
			printTalks(c.App.Writer, st.Talks)
			return nil
		},
	}
}

func submitCommand() *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "Propose a talk under your display name",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true, Usage: "Talk title"},
			&cli.StringFlag{Name: "summary", Aliases: []string{"s"}, Usage: "One-line summary"},
		},
		Action: func(c *cli.Context) error {
			_, err := oneshot(c, state.NewTalk{Title: c.String("title"), Summary: c.String("summary")})
			return err
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a talk",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true, Usage: "Talk title"},
		},
		Action: func(c *cli.Context) error {
			_, err := oneshot(c, state.DeleteTalk{Talk: c.String("title")})
			return err
		},
	}
}

func commentCommand() *cli.Command {
	return &cli.Command{
		Name:  "comment",
		Usage: "Comment on a talk",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "talk", Aliases: []string{"t"}, Required: true, Usage: "Talk title"},
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Required: true, Usage: "Comment text"},
		},
		Action: func(c *cli.Context) error {
			_, err := oneshot(c, state.NewComment{Talk: c.String("talk"), Message: c.String("message")})
			return err
		},
	}
}

func nameCommand() *cli.Command {
	return &cli.Command{
		Name:      "name",
		Usage:     "Show or change your display name",
		ArgsUsage: "[NAME]",
		Action: func(c *cli.Context) error {
			var actions []state.Action
			if c.NArg() > 0 {
				actions = append(actions, state.SetUser{User: strings.Join(c.Args().Slice(), " ")})
			}
			st, err := oneshot(c, actions...)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, st.User)
			return nil
		},
	}
}

func logsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Print the tail of the client log",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "lines", Aliases: []string{"n"}, Value: 200, Usage: "Lines to show; 0 for all"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			lines, err := logtail.Read(cfg.LogFile, c.Int("lines"))
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Fprintf(c.App.ErrWriter, "no log entries in %s\n", cfg.LogFile)
				return nil
			}
			return logtail.Pretty(c.App.Writer, lines, isTerminal(c.App.Writer))
		},
	}
}

func printTalks(w io.Writer, list []talks.Talk) {
	if len(list) == 0 {
		fmt.Fprintln(w, "no talks")
		return
	}
	for i, t := range list {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (by %s)\n", t.Title, t.Presenter)
		if t.Summary != "" {
			fmt.Fprintf(w, "  %s\n", t.Summary)
		}
		for _, cm := range t.Comments {
			fmt.Fprintf(w, "    %s: %s\n", cm.Author, cm.Message)
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
