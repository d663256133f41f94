package app

import (
	"context"
	"fmt"

	"github.com/vk/chainforge/internal/catalog"
	"github.com/vk/chainforge/internal/chain"
	"github.com/vk/chainforge/internal/configurer"
	"github.com/vk/chainforge/internal/ctxlog"
	"github.com/vk/chainforge/internal/errors"
	"github.com/vk/chainforge/internal/generation"
	"github.com/vk/chainforge/internal/model"
	"github.com/vk/chainforge/internal/registry"
)

// LoadModel reads every config path and builds the ChainsModel.
func (a *App) LoadModel(ctx context.Context) (*model.ChainsModel, []string, error) {
	cfg, err := a.loader.Load(ctx, a.config.ConfigPaths...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	m, err := model.FromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("Chains model built.",
		"components", len(m.AllComponents()), "chains", len(m.ChainSpecifications()))
	return m, cfg.Files, nil
}

// Build loads the configuration, instantiates every component and publishes
// a new generation. On failure the previous generation stays live.
func (a *App) Build(ctx context.Context) (*generation.Generation[*catalog.Instance], error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	m, files, err := a.LoadModel(ctx)
	if err != nil {
		return nil, err
	}

	instances, err := a.catalog.Instantiate(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate components: %w", err)
	}

	gen, err := a.holder.Rebuild(ctx, m, instances, files)
	if err != nil {
		a.logger.Debug("Build failed.", "stack", errors.ErrorWithStackTrace(err))
		return nil, err
	}
	return gen, nil
}

// Validate runs the structural model checks and a full dry-run assembly
// without publishing anything.
func (a *App) Validate(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger

	m, _, err := a.LoadModel(ctx)
	if err != nil {
		return err
	}

	if err := m.Validate(); err != nil {
		return err
	}
	logger.Debug("Structural validation passed.")

	instances, err := a.catalog.Instantiate(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to instantiate components: %w", err)
	}

	out := registry.NewBuilder[*chain.Chain[*catalog.Instance]]()
	if err := configurer.PrepareChainRegistry(ctx, out, m, instances, configurer.WithExclusionPolicy(a.config.exclusionPolicy())); err != nil {
		return err
	}

	logger.Info("Configuration is valid.", "chains", out.Len(), "components", instances.Len())
	return nil
}
