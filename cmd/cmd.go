// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles database setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// demoCommand runs a scripted dialog session against the bridge.
func demoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Run a scripted dialog session and print delivered events",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Working directory for saved and loaded files (default: a temp dir)",
			},
			&cli.IntFlag{
				Name:  "rate-ms",
				Usage: "Tick interval in milliseconds",
				Value: 50,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output events as JSON",
			},
			&cli.BoolFlag{
				Name:  "slow",
				Usage: "Throttle payload I/O to keep operations pending across ticks",
			},
		},
		Action: r.Demo,
	}
}

// tuiCommand returns the top-level TUI command for the interactive dialog host.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive dialog host",
		Action:  r.TUI,
	}
}

// recentCommand manages remembered dialog locations.
func recentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "recent",
		Usage: "Inspect and manage recent dialog locations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List remembered locations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.RecentList,
			},
			{
				Name:  "forget",
				Usage: "Forget one channel's remembered location",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "family",
						Usage:    "Dialog family (save, load, pick_file, pick_directory)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "kind",
						Usage:    "Channel kind",
						Required: true,
					},
				},
				Action: r.RecentForget,
			},
			{
				Name:   "clear",
				Usage:  "Forget every remembered location",
				Action: r.RecentClear,
			},
		},
	}
}
