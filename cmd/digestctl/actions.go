// ABOUTME: Actions behind the digestctl subcommands
// ABOUTME: Each action loads configuration, builds the needed components and prints a result

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"linkdigest-api/core/domain"
	"linkdigest-api/core/interfaces"
	"linkdigest-api/infrastructure/store/github"
	"linkdigest-api/pkg/bootstrap"
	"linkdigest-api/pkg/config"
	"linkdigest-api/pkg/featureflags"

	"github.com/urfave/cli/v2"
)

type environment struct {
	cfg   *config.Config
	deps  interfaces.Dependencies
	flags featureflags.Manager
}

func loadEnvironment(c *cli.Context) (*environment, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Log.Level = c.String("log-level")
	cfg.Log.File = ""

	logger := bootstrap.NewLogger(cfg.Log)
	return &environment{
		cfg:   cfg,
		deps:  bootstrap.NewDependencies(cfg, logger),
		flags: featureflags.NewEnvManager(cfg.FeatureFlagPrefix),
	}, nil
}

func inputArg(c *cli.Context) (string, error) {
	input := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if input == "" {
		return "", cli.Exit("missing input: pass a URL or some text", 2)
	}
	return input, nil
}

// ExtractAction resolves the input and prints the content
func ExtractAction(c *cli.Context) error {
	input, err := inputArg(c)
	if err != nil {
		return err
	}
	env, err := loadEnvironment(c)
	if err != nil {
		return err
	}

	extractor := bootstrap.NewExtractor(env.cfg, env.deps, env.flags)
	result, err := extractor.Extract(c.Context, input)
	if err != nil {
		return err
	}
	return writeExtract(c.App.Writer, result, c.Bool("json"))
}

// DigestAction extracts, summarizes and optionally saves the input
func DigestAction(c *cli.Context) error {
	input, err := inputArg(c)
	if err != nil {
		return err
	}
	env, err := loadEnvironment(c)
	if err != nil {
		return err
	}
	if err := env.cfg.ValidateLLM(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	extractor := bootstrap.NewExtractor(env.cfg, env.deps, env.flags)
	summarizer, err := bootstrap.NewSummarizer(env.cfg, env.deps)
	if err != nil {
		return err
	}

	extracted, err := extractor.Extract(c.Context, input)
	if err != nil {
		return err
	}
	digest, err := summarizer.Summarize(c.Context, extracted.Content)
	if err != nil {
		return err
	}

	if err := writeDigest(c.App.Writer, digest, extracted.URL, c.String("format"), time.Now()); err != nil {
		return err
	}

	if c.Bool("save") {
		if err := env.cfg.Validate(); err != nil {
			return cli.Exit(err.Error(), 2)
		}
		doc, err := bootstrap.NewStore(env.cfg, env.deps).Save(c.Context, digest, extracted.URL)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.ErrWriter, "saved: %s\n", doc.URL)
	}
	return nil
}

// FlagsAction prints every feature flag and its state
func FlagsAction(c *cli.Context) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	return writeFlags(c.App.Writer, featureflags.NewEnvManager(cfg.FeatureFlagPrefix))
}

func writeExtract(w io.Writer, result *domain.ExtractResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.Title != "" {
		fmt.Fprintf(w, "# %s\n", result.Title)
	}
	if result.URL != "" {
		fmt.Fprintf(w, "source: %s\n", result.URL)
	}
	if result.Title != "" || result.URL != "" {
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintln(w, result.Content)
	return err
}

func writeDigest(w io.Writer, digest *domain.Digest, sourceURL, format string, now time.Time) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(digest)
	case "markdown", "md", "":
		doc, err := github.RenderMarkdown(digest, sourceURL, now)
		if err != nil {
			return err
		}
		_, err = w.Write(doc)
		return err
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", format), 2)
	}
}

func writeFlags(w io.Writer, flags featureflags.Manager) error {
	states := flags.GetAllFlags()
	names := make([]string, 0, len(states))
	for flag := range states {
		names = append(names, string(flag))
	}
	sort.Strings(names)

	for _, name := range names {
		state := "off"
		if states[featureflags.FeatureFlag(name)] {
			state = "on"
		}
		if _, err := fmt.Fprintf(w, "%-16s %s\n", name, state); err != nil {
			return err
		}
	}
	return nil
}
