package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vk/chainforge/internal/catalog"
	"github.com/vk/chainforge/internal/config"
	"github.com/vk/chainforge/internal/configurer"
	"github.com/vk/chainforge/internal/ctxlog"
	"github.com/vk/chainforge/internal/generation"
	"github.com/vk/chainforge/internal/hcl_adapter"
	"github.com/vk/chainforge/internal/metrics"
	"github.com/vk/chainforge/internal/yaml_adapter"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	ctx        context.Context
	config     *Config
	loader     config.Loader
	extensions []string
	catalog    *catalog.Catalog
	holder     *generation.Holder[*catalog.Instance]
	promReg    *prometheus.Registry
	httpServer *http.Server
}

// DefaultLoader returns the loader for every supported config format.
func DefaultLoader() (*config.MultiLoader, error) {
	return config.NewMultiLoader(hcl_adapter.NewLoader(), yaml_adapter.NewLoader())
}

// NewApp is the constructor for the main application. Logs go to logW. A nil
// loader selects DefaultLoader; no modules selects the core modules.
func NewApp(logW io.Writer, cfg *Config, loader config.Loader, modules ...catalog.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var extensions []string
	if loader == nil {
		ml, err := DefaultLoader()
		if err != nil {
			return nil, err
		}
		loader = ml
		extensions = ml.Extensions()
	} else if ml, ok := loader.(*config.MultiLoader); ok {
		extensions = ml.Extensions()
	}

	if len(modules) == 0 {
		modules = coreModules
	}
	cat := catalog.New(modules...)
	logger.Debug("All component modules registered.", "count", len(modules), "classes", cat.Classes())

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	holder := generation.NewHolder[*catalog.Instance](
		metrics.New(promReg),
		configurer.WithExclusionPolicy(cfg.exclusionPolicy()),
	)

	return &App{
		outW:       logW,
		logger:     logger,
		ctx:        ctx,
		config:     cfg,
		loader:     loader,
		extensions: extensions,
		catalog:    cat,
		holder:     holder,
		promReg:    promReg,
	}, nil
}

// Context returns the app's base context, carrying its logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// Current returns the live generation, or nil if none was built yet.
func (a *App) Current() *generation.Generation[*catalog.Instance] {
	return a.holder.Current()
}

// Catalog returns the application's component catalog. This is primarily for testing.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}
