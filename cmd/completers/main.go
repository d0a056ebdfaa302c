// Package main is the entry point for the completers CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v3"

	compcli "github.com/saf/completers/internal/cli"
	"github.com/saf/completers/pkg/version"
)

func main() {
	// Get XDG paths
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, _ := os.UserHomeDir()
		cacheHome = filepath.Join(home, ".cache")
	}

	logPath := filepath.Join(cacheHome, "completers", "completers.log")

	app := &cli.Command{
		Name:                  "completers",
		Usage:                 "Interactive fuzzy completion for the command line",
		ArgsUsage:             "<line>",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("COMPLETERS_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "log-file",
				Value: logPath,
				Usage: "Log file path",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (defaults to the user config)",
			},
			&cli.StringFlag{
				Name:    "point",
				Value:   "0",
				Usage:   "Cursor position within the line, in bytes",
				Sources: cli.EnvVars("COMPLETERS_POINT"),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			line := ""
			if cmd.Args().Len() > 0 {
				line = cmd.Args().Get(0)
			}

			point, err := strconv.Atoi(cmd.String("point"))
			if err != nil {
				return fmt.Errorf("invalid --point value: %w", err)
			}

			return compcli.Complete(compcli.CompleteParams{
				Line:       line,
				Point:      point,
				ConfigPath: cmd.String("config"),
				LogLevel:   cmd.String("log-level"),
				LogFile:    cmd.String("log-file"),
			})
		},
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate a completers configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := ""
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return compcli.Validate(configPath)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for completers configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return compcli.Schema(outputPath)
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
