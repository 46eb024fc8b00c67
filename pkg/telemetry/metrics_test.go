package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_UsesProvidedRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewMetrics(registry)
	m.ObserveToolCall("list_products", 10*time.Millisecond)
	m.ObserveUpstream("rest", "ok", 20*time.Millisecond)
	m.ObserveRating(4)

	metrics, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(metrics))
	for _, mf := range metrics {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		"shopify_tool_calls_total",
		"shopify_tool_call_duration_seconds",
		"shopify_upstream_requests_total",
		"shopify_upstream_request_duration_seconds",
		"shopify_ratings_total",
	}, names)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ratings.WithLabelValues("4")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.upstreamRequests.WithLabelValues("rest", "ok")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveToolCall("x", time.Second)
		m.ObserveUpstream("rest", "ok", time.Second)
		m.ObserveRating(1)
	})
}
