package generation

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/chainforge/internal/chain"
	"github.com/vk/chainforge/internal/componentid"
	"github.com/vk/chainforge/internal/config"
	"github.com/vk/chainforge/internal/ctxlog"
	"github.com/vk/chainforge/internal/metrics"
	"github.com/vk/chainforge/internal/model"
	"github.com/vk/chainforge/internal/registry"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setup(t *testing.T, chains ...*config.Chain) (*model.ChainsModel, *registry.Registry[*chain.Base]) {
	t.Helper()
	cfg := &config.Model{
		Components: []*config.Component{{ID: "A"}, {ID: "B", After: []string{"A"}}},
		Chains:     chains,
	}
	m, err := model.FromConfig(cfg)
	require.NoError(t, err)

	b := registry.NewBuilder[*chain.Base]()
	for _, id := range []string{"A", "B"} {
		cid := componentid.MustParseID(id)
		require.NoError(t, b.Register(cid, chain.NewBase(cid)))
	}
	return m, b.Freeze()
}

func TestHolder_Rebuild(t *testing.T) {
	ctx := testContext()
	reg := prometheus.NewRegistry()
	bm := metrics.New(reg)
	h := NewHolder[*chain.Base](bm)
	assert.Nil(t, h.Current())

	m, in := setup(t, &config.Chain{ID: "main", Components: []string{"B", "A"}})
	first, err := h.Rebuild(ctx, m, in, []string{"main.hcl"})
	require.NoError(t, err)
	require.Same(t, first, h.Current())
	assert.Equal(t, []string{"main.hcl"}, first.Source)

	c, ok := first.Chains.Resolve(componentid.NewSpecification("main"))
	require.True(t, ok)
	assert.Equal(t, "main[A, B]", c.String())

	broken, in := setup(t, &config.Chain{ID: "main", Components: []string{"A", "missing"}})
	_, err = h.Rebuild(ctx, broken, in, nil)
	require.Error(t, err)
	assert.Same(t, first, h.Current(), "failed build must keep the previous generation")

	second, err := h.Rebuild(ctx, m, in, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Same(t, second, h.Current())

	assert.Equal(t, 2.0, testutil.ToFloat64(bm.BuildsTotal.WithLabelValues(metrics.ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(bm.BuildsTotal.WithLabelValues(metrics.ResultFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(bm.ChainsPublished))
}

func TestHolder_ConcurrentReaders(t *testing.T) {
	ctx := testContext()
	h := NewHolder[*chain.Base](nil)
	m, in := setup(t, &config.Chain{ID: "main", Components: []string{"A", "B"}})
	_, err := h.Rebuild(ctx, m, in, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				gen := h.Current()
				if assert.NotNil(t, gen) {
					assert.Equal(t, 1, gen.Chains.Len())
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		_, err := h.Rebuild(ctx, m, in, nil)
		require.NoError(t, err)
	}
	wg.Wait()
}
