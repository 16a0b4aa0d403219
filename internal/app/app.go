// Package app implements the application layer for depsize.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.trai.ch/depsize/internal/core/domain"
	"go.trai.ch/depsize/internal/core/ports"
	"go.trai.ch/depsize/internal/engine/aggregator"
	"go.trai.ch/depsize/internal/engine/index"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	cargo        ports.PackageResolver
	packages     ports.PackageResolver
	aggregator   *aggregator.Aggregator
	renderer     ports.ReportRenderer
	logger       ports.Logger
	stdout       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	cargo ports.PackageResolver,
	packages ports.PackageResolver,
	agg *aggregator.Aggregator,
	renderer ports.ReportRenderer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		cargo:        cargo,
		packages:     packages,
		aggregator:   agg,
		renderer:     renderer,
		logger:       log,
		stdout:       os.Stdout,
	}
}

// WithStdout redirects the report output.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// RunOptions holds the command line settings for one run.
// Nil or empty fields leave the config file value untouched.
type RunOptions struct {
	ConfigPath   string
	Concurrency  *int
	ManifestPath string
	PackagesFile string
	DirectOnly   *bool
	Ignore       []string
	NoColor      bool
	LogJSON      bool
}

// jsonSwitcher is implemented by loggers that can emit JSON.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// Run resolves the dependencies, measures them and prints the report.
//
// A report with failed packages is still printed; the returned error then
// wraps domain.ErrIncompleteReport. A resolver failure is logged and yields
// an empty report rather than a fatal error.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if s, ok := a.logger.(jsonSwitcher); ok {
		s.SetJSON(opts.LogJSON)
	}

	// 1. Load the configuration
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	cfg = merge(cfg, opts)
	if cfg.Concurrency < 0 {
		return zerr.With(domain.ErrInvalidConcurrency, "concurrency", cfg.Concurrency)
	}

	// 2. Resolve the dependency set
	resolver := a.cargo
	if cfg.PackagesFile != "" {
		resolver = a.packages
	}
	pkgs, err := resolver.Resolve(ctx, ports.ResolveRequest{
		ManifestPath: cfg.ManifestPath,
		PackagesFile: cfg.PackagesFile,
		DirectOnly:   cfg.DirectOnly,
	})
	if err != nil {
		a.logger.Error(zerr.Wrap(err, domain.ErrResolveFailed.Error()))
		pkgs = nil
	}

	// 3. Deduplicate
	unique, warnings := index.Dedupe(pkgs)
	for _, w := range warnings {
		a.logger.Warn(w.String())
	}

	// 4. Measure
	report, aggErr := a.aggregator.Aggregate(ctx, unique, aggregator.Options{
		Concurrency: cfg.Concurrency,
		Ignores:     cfg.Ignore,
	})

	// 5. Render, even when canceled, so finished measurements are not lost
	if err := a.renderer.Render(a.stdout, report, ports.RenderOptions{NoColor: opts.NoColor}); err != nil {
		return err
	}

	if aggErr != nil {
		return zerr.Wrap(aggErr, "measurement interrupted")
	}
	if !report.Complete() {
		msg := fmt.Sprintf("%d of %d packages failed", report.Failures, len(report.Entries))
		return zerr.With(zerr.Wrap(domain.ErrIncompleteReport, msg), "failed", report.Failures)
	}
	return nil
}

func merge(cfg *domain.Config, opts RunOptions) *domain.Config {
	merged := *cfg
	if opts.Concurrency != nil {
		merged.Concurrency = *opts.Concurrency
	}
	if opts.ManifestPath != "" {
		merged.ManifestPath = opts.ManifestPath
	}
	if opts.PackagesFile != "" {
		merged.PackagesFile = opts.PackagesFile
	}
	if opts.DirectOnly != nil {
		merged.DirectOnly = *opts.DirectOnly
	}
	if len(opts.Ignore) > 0 {
		merged.Ignore = append(append([]string(nil), cfg.Ignore...), opts.Ignore...)
	}
	return &merged
}
