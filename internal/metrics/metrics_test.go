package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveBuild(10*time.Millisecond, nil)
	m.ObserveBuild(time.Millisecond, errors.New("boom"))
	m.ObserveBuild(time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BuildsTotal.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildsTotal.WithLabelValues(ResultFailure)))

	at := time.Unix(1700000000, 0)
	m.ObservePublished(3, 7, at)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ChainsPublished))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.ComponentsLoaded))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.LastSuccessUnixTs))

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "chainforge_builds_total")
	assert.Contains(t, names, "chainforge_build_duration_seconds")
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *BuildMetrics
	assert.NotPanics(t, func() {
		m.ObserveBuild(time.Second, nil)
		m.ObservePublished(1, 1, time.Now())
	})
}
