package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudflare/rc5/metrics"
)

func TestRegisterBuildInfo(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics.RegisterBuildInfo(registry, "test", "2026-01-01", "1.2.3")

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "build_info", families[0].GetName())
	assert.Equal(t, 1.0, families[0].GetMetric()[0].GetGauge().GetValue())

	assert.Panics(t, func() {
		metrics.RegisterBuildInfo(registry, "test", "2026-01-01", "1.2.3")
	})
}

func TestCounterValue(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blocks_total",
		Help: "test",
	}, []string{"operation", "word_size"})
	registry.MustRegister(counter)

	counter.WithLabelValues("encrypt", "32").Add(3)
	counter.WithLabelValues("decrypt", "32").Add(2)
	counter.WithLabelValues("encrypt", "64").Add(7)

	v, err := metrics.CounterValue(registry, "blocks_total", map[string]string{"operation": "encrypt", "word_size": "32"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = metrics.CounterValue(registry, "blocks_total", map[string]string{"operation": "encrypt"})
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	v, err = metrics.CounterValue(registry, "blocks_total", nil)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)

	_, err = metrics.CounterValue(registry, "blocks_total", map[string]string{"word_size": "8"})
	assert.ErrorIs(t, err, metrics.ErrMetricNotFound)

	_, err = metrics.CounterValue(registry, "missing_total", nil)
	assert.ErrorIs(t, err, metrics.ErrMetricNotFound)
}
