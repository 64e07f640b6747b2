// ABOUTME: Command line tool running the extraction and summarization pipeline once
// ABOUTME: Useful for checking configuration and prompt output without the HTTP server

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "digestctl",
		Usage: "resolve links and produce digests from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"DIGESTCTL_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "resolve a URL or text to clean content",
				ArgsUsage: "<url or text>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "print the result as JSON"},
				},
				Action: ExtractAction,
			},
			{
				Name:      "digest",
				Usage:     "extract and summarize input",
				ArgsUsage: "<url or text>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: "markdown", Usage: "output format (markdown, json)"},
					&cli.BoolFlag{Name: "save", Usage: "also write the digest to the configured repository"},
				},
				Action: DigestAction,
			},
			{
				Name:   "flags",
				Usage:  "show feature flag states",
				Action: FlagsAction,
			},
		},
	}
}
