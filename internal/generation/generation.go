// Package generation publishes assembled chain registries. Each successful
// build becomes an immutable Generation that replaces the previous one in a
// single atomic swap; readers never see a partially built registry.
package generation

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vk/chainforge/internal/chain"
	"github.com/vk/chainforge/internal/configurer"
	"github.com/vk/chainforge/internal/ctxlog"
	"github.com/vk/chainforge/internal/metrics"
	"github.com/vk/chainforge/internal/model"
	"github.com/vk/chainforge/internal/registry"
)

// Generation is one published set of chains.
type Generation[C chain.Component] struct {
	ID         uuid.UUID
	Chains     *registry.Registry[*chain.Chain[C]]
	Components *registry.Registry[C]
	BuiltAt    time.Time
	// Source lists the config files the generation was built from.
	Source []string
}

// Holder owns the live generation.
type Holder[C chain.Component] struct {
	current atomic.Pointer[Generation[C]]
	// mu serializes rebuilds; Current never takes it.
	mu      sync.Mutex
	metrics *metrics.BuildMetrics
	opts    []configurer.Option
	now     func() time.Time
}

// NewHolder creates a holder with no live generation. m may be nil.
func NewHolder[C chain.Component](m *metrics.BuildMetrics, opts ...configurer.Option) *Holder[C] {
	return &Holder[C]{metrics: m, opts: opts, now: time.Now}
}

// Current returns the live generation, or nil before the first successful
// Rebuild. It is safe for concurrent use.
func (h *Holder[C]) Current() *Generation[C] {
	return h.current.Load()
}

// Rebuild assembles every chain of m from components and, on success,
// publishes the result as the new live generation. On failure the previous
// generation stays live and the error is returned.
func (h *Holder[C]) Rebuild(ctx context.Context, m *model.ChainsModel, components *registry.Registry[C], source []string) (*Generation[C], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New()
	ctx = ctxlog.With(ctx, "generation", id.String())
	logger := ctxlog.FromContext(ctx)

	start := h.now()
	builder := registry.NewBuilder[*chain.Chain[C]]()
	err := configurer.PrepareChainRegistry(ctx, builder, m, components, h.opts...)
	h.metrics.ObserveBuild(h.now().Sub(start), err)
	if err != nil {
		if prev := h.current.Load(); prev != nil {
			logger.Error("Generation build failed, keeping previous generation.", "previous", prev.ID.String(), "error", err)
		} else {
			logger.Error("Generation build failed.", "error", err)
		}
		return nil, err
	}

	gen := &Generation[C]{
		ID:         id,
		Chains:     builder.Freeze(),
		Components: components,
		BuiltAt:    h.now(),
		Source:     append([]string(nil), source...),
	}
	h.current.Store(gen)
	h.metrics.ObservePublished(gen.Chains.Len(), components.Len(), gen.BuiltAt)

	logger.Info("Published chain generation.", "chains", gen.Chains.Len(), "components", components.Len())
	return gen, nil
}
