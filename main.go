package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/tag-extractor/internal/extract"
	"github.com/dtnitsch/tag-extractor/internal/runs"
	"github.com/dtnitsch/tag-extractor/models"
	"github.com/dtnitsch/tag-extractor/pkg/help"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tag-extractor",
		Usage: "Count tags (non-stop words) in text files, HTML pages and URLs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the YAML config file",
				Value:   models.ConfigPath(),
				EnvVars: []string{models.EnvConfigPath},
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to the run history database (default: next to the binary)",
				EnvVars: []string{models.EnvDBPath},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Aliases:   []string{"x"},
				Usage:     "Extract tags from one or more text sources",
				ArgsUsage: "[SOURCE...]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "text",
						Aliases: []string{"t"},
						Usage:   "Text source: file path, .html file, http(s) URL or - for stdin (repeatable)",
					},
					&cli.StringFlag{
						Name:    "stopwords",
						Aliases: []string{"s"},
						Usage:   "Stop-word file, one word per line",
					},
					&cli.BoolFlag{
						Name:  "builtin-stopwords",
						Usage: "Use the built-in English stop-word list instead of a file",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write 'word: count' lines to this file",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Write 'word: count' lines to a dated file under output_dir",
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "Write a run report (.yaml or .json)",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Stdout format: text, yaml, or json",
						Value: extract.FormatText,
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Show only the N most frequent tags (0 = all)",
					},
					&cli.BoolFlag{
						Name:  "keep-empty",
						Usage: "Count tokens without letters under the empty tag, splitting lines like the legacy desktop tool",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent source loaders",
						Value: 4,
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "Directory for cached URL fetches",
					},
					&cli.StringFlag{
						Name:  "max-age",
						Usage: "Reuse cached URL fetches younger than this (e.g. 1h, 0 = forever)",
					},
					&cli.BoolFlag{
						Name:  "no-language",
						Usage: "Skip language detection",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "Do not record the run in the history database",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Only log errors",
					},
				},
				Action: extract.ExtractAction,
			},
			{
				Name:  "runs",
				Usage: "List recorded runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to show (0 = all)",
						Value: 20,
					},
				},
				Action: runs.RunsAction,
			},
			{
				Name:      "run",
				Usage:     "Show details of a run (latest if no ID is given)",
				ArgsUsage: "[ID]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of top tags to show (0 = all)",
						Value: 10,
					},
				},
				Action: runs.RunAction,
			},
			{
				Name:      "tags",
				Usage:     "Print the tags of a run as 'word: count' lines",
				ArgsUsage: "[ID]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of tags (0 = all)",
					},
				},
				Action: runs.TagsAction,
			},
			{
				Name:  "coldstart",
				Usage: "Print a quick-start guide",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return err
				},
			},
		},
	}
}
