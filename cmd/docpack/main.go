package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docpack/internal/config"
	"git.home.luguber.info/inful/docpack/internal/devdocs"
	"git.home.luguber.info/inful/docpack/internal/errors"
	"git.home.luguber.info/inful/docpack/internal/generator"
	"git.home.luguber.info/inful/docpack/internal/metrics"
	"git.home.luguber.info/inful/docpack/internal/retry"
	"git.home.luguber.info/inful/docpack/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		All           bool     `help:"Package every documentation set DevDocs publishes"`
		Slug          []string `help:"Package sets by slug; repeatable, accepts comma separated values"`
		First         int      `help:"Package only the first N sets per slug without version"`
		SkipSlugRegex string   `help:"Skip sets whose slug matches this regular expression"`
		Output        string   `short:"o" help:"Output directory for archives"`
		FrontendURL   string   `help:"DevDocs frontend base URL"`
		DocumentsURL  string   `help:"DevDocs documents base URL"`
		NameFormat    string   `help:"Archive name format, {placeholder} substituted per set"`
		TitleFormat   string   `help:"Archive title format"`
		Description   string   `help:"Archive description format"`
		MetricsAddr   string   `help:"Serve Prometheus metrics on this address while building"`
	} `cmd:"" help:"Fetch documentation from DevDocs and build offline archives"`

	List struct {
		FrontendURL string `help:"DevDocs frontend base URL"`
	} `cmd:"" help:"List the documentation sets DevDocs has published"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := errors.NewCLIErrorAdapter(CLI.Verbose, logger)

	switch ctx.Command() {
	case "build":
		adapter.HandleError(runBuild())
	case "list":
		adapter.HandleError(runList())
	case "version":
		fmt.Printf("docpack %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
	}
}

func runBuild() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	applyBuildFlags(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if CLI.Build.MetricsAddr != "" {
		registry := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
		go serveMetrics(CLI.Build.MetricsAddr, registry)
	}

	policy := retry.NewPolicy(
		retry.BackoffMode(cfg.Retry.Backoff),
		cfg.Retry.Initial,
		cfg.Retry.Max,
		cfg.Retry.MaxRetries,
	)
	if err := policy.Validate(); err != nil {
		return errors.ValidationFailed("retry", err.Error())
	}

	client := devdocs.NewClient(
		cfg.Endpoints.FrontendURL,
		cfg.Endpoints.DocumentsURL,
		devdocs.WithRetryPolicy(policy),
		devdocs.WithRecorder(recorder),
	)

	gen, err := generator.New(generator.Options{
		Client:  client,
		Archive: cfg.Archive,
		Filter: generator.DocFilter{
			All:           CLI.Build.All,
			Slugs:         CLI.Build.Slug,
			First:         CLI.Build.First,
			SkipSlugRegex: CLI.Build.SkipSlugRegex,
		},
		OutputDir: cfg.Output.Directory,
		Recorder:  recorder,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	if err := gen.Run(ctx); err != nil {
		return err
	}
	slog.Info("Build complete", "output", cfg.Output.Directory, "elapsed", time.Since(start).Round(time.Second))
	return nil
}

// applyBuildFlags lets command line flags override the loaded configuration.
func applyBuildFlags(cfg *config.Config) {
	if CLI.Build.Output != "" {
		cfg.Output.Directory = CLI.Build.Output
	}
	if CLI.Build.FrontendURL != "" {
		cfg.Endpoints.FrontendURL = CLI.Build.FrontendURL
	}
	if CLI.Build.DocumentsURL != "" {
		cfg.Endpoints.DocumentsURL = CLI.Build.DocumentsURL
	}
	if CLI.Build.NameFormat != "" {
		cfg.Archive.NameFormat = CLI.Build.NameFormat
	}
	if CLI.Build.TitleFormat != "" {
		cfg.Archive.TitleFormat = CLI.Build.TitleFormat
	}
	if CLI.Build.Description != "" {
		cfg.Archive.DescriptionFormat = CLI.Build.Description
	}
}

func runList() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := devdocs.NewClient(CLI.List.FrontendURL, "")
	docs, err := client.ListDocs(ctx)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Printf("%-40s %s\n", doc.Slug, doc.FullName())
	}
	slog.Info("Listed documentation sets", "count", len(docs))
	return nil
}

func serveMetrics(addr string, registry *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(registry))
	slog.Info("Serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Warn("Metrics server stopped", "error", err)
	}
}
