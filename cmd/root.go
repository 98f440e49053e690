// Package cmd implements the repolens command-line interface.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/drpaneas/repolens/internal/analyzer"
	"github.com/drpaneas/repolens/internal/config"
	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/llm"
	"github.com/drpaneas/repolens/internal/modernize"
	"github.com/drpaneas/repolens/internal/profile"
)

// app holds the dependencies shared by all subcommands. It is populated by
// the root command's PersistentPreRunE.
type app struct {
	v          *viper.Viper
	configFile string

	cfg      *config.Config
	crawler  *ghcrawl.Crawler
	provider llm.Provider
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "repolens",
		Short: "Score the engineering quality of GitHub repositories",
		Long: `repolens fetches a repository's metadata, history, issues and pull requests
from GitHub, derives quality metrics, combines them into a 0-100 score and
optionally asks an LLM for a written assessment. It can also score a GitHub
account from its profile and recent repositories.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default .repolens.yaml in . or $HOME)")
	pf.String("provider", "", "LLM provider: openai, anthropic, gemini, ollama, none")
	pf.String("model", "", "LLM model (default: per-provider)")
	pf.String("ollama-host", "", "Ollama server URL")
	pf.String("format", "", "output format: text, json, markdown")
	pf.Bool("verbose", false, "enable debug logging")
	for _, name := range []string{"provider", "model", "ollama-host", "format", "verbose"} {
		_ = a.v.BindPFlag(name, pf.Lookup(name))
	}

	root.AddCommand(newAnalyzeCmd(a), newProfileCmd(a), newModernizeCmd(a), newServeCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	crawler, err := ghcrawl.NewCrawler(cfg.GitHubToken, ghcrawl.WithPolicy(cfg.Policy()))
	if err != nil {
		return fmt.Errorf("creating github client: %w", err)
	}
	provider, err := llm.NewProvider(cfg.ProviderConfig())
	if err != nil {
		return fmt.Errorf("creating LLM provider: %w", err)
	}
	slog.Debug("configuration loaded", "provider", cfg.Provider, "model", cfg.Model, "concurrency", cfg.Concurrency)

	a.cfg, a.crawler, a.provider = cfg, crawler, provider
	return nil
}

func (a *app) analyzer() *analyzer.Analyzer {
	return analyzer.New(a.crawler, a.provider, analyzer.Options{
		ReviewThrottle:    a.cfg.ReviewThrottle,
		LLMReviewThrottle: a.cfg.LLMReviewThrottle,
		Sleep:             a.crawler.Fetcher().Sleep,
	})
}

func (a *app) profiler() *profile.Analyzer {
	return profile.New(a.crawler, a.provider, profile.Options{
		LanguageThrottle: a.cfg.LanguageThrottle,
		Sleep:            a.crawler.Fetcher().Sleep,
	})
}

func (a *app) advisor() *modernize.Advisor {
	return modernize.NewAdvisor(a.crawler, a.provider)
}

// Execute runs the root command until completion or interrupt.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return newRootCmd().ExecuteContext(ctx)
}
