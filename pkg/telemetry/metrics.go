package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	toolCalls        *prometheus.CounterVec
	toolDuration     *prometheus.HistogramVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	ratings          *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Metrics{
		toolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopify_tool_calls_total",
				Help: "Total number of tool calls handled",
			},
			[]string{"tool"},
		),
		toolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shopify_tool_call_duration_seconds",
				Help:    "Duration of tool calls in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"tool"},
		),
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopify_upstream_requests_total",
				Help: "Total number of upstream Shopify requests by outcome",
			},
			[]string{"api", "outcome"},
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shopify_upstream_request_duration_seconds",
				Help:    "Duration of upstream Shopify requests in seconds",
				Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"api"},
		),
		ratings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopify_ratings_total",
				Help: "Total number of accepted ratings by star count",
			},
			[]string{"stars"},
		),
	}
}

func (m *Metrics) ObserveToolCall(tool string, duration time.Duration) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

func (m *Metrics) ObserveUpstream(api, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(api, outcome).Inc()
	m.upstreamDuration.WithLabelValues(api).Observe(duration.Seconds())
}

func (m *Metrics) ObserveRating(stars int) {
	if m == nil {
		return
	}
	m.ratings.WithLabelValues(strconv.Itoa(stars)).Inc()
}
