package app

import (
	"context"
	"io"

	"github.com/vk/chainforge/internal/ctxlog"
	"github.com/vk/chainforge/internal/watcher"
)

var defaultExtensions = []string{".hcl", ".yaml", ".yml"}

// Assemble builds one generation and writes it to w in the configured
// output format.
func (a *App) Assemble(ctx context.Context, w io.Writer) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	gen, err := a.Build(ctx)
	if err != nil {
		return err
	}
	return NewGenerationView(gen).Write(w, a.config.OutputFormat)
}

// Serve builds the first generation, starts the HTTP server and, when
// watching is enabled, rebuilds on every config change until ctx is done.
// A failed first build is fatal; later failures keep the live generation.
func (a *App) Serve(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger

	if _, err := a.Build(ctx); err != nil {
		return err
	}

	if _, err := a.startServer(ctx); err != nil {
		return err
	}
	defer func() { _ = a.closeServer(ctx) }()

	var changes <-chan struct{}
	if a.config.Watch {
		exts := a.extensions
		if len(exts) == 0 {
			exts = defaultExtensions
		}
		cfg := watcher.DefaultConfig(a.config.ConfigPaths, exts)
		cfg.DebounceDur = a.config.WatchDebounce

		w, err := watcher.New(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()

		if changes, err = w.Start(ctx); err != nil {
			return err
		}
		logger.Info("Watching configuration for changes.", "paths", a.config.ConfigPaths)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Serve loop finished.")
			return nil
		case <-changes:
			if _, err := a.Build(ctx); err != nil {
				logger.Error("Rebuild failed, previous generation stays live.", "error", err)
			}
		}
	}
}
