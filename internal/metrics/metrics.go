package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the service collectors. Each instance registers on its own registerer,
// so tests can build isolated instances.
type Metrics struct {
	SourceFetchTotal    *prometheus.CounterVec
	SourceFetchDuration *prometheus.HistogramVec
	RateResolvedTotal   *prometheus.CounterVec
	RateCacheTotal      *prometheus.CounterVec

	OrdersCreatedTotal      *prometheus.CounterVec
	PricingRejectedTotal    *prometheus.CounterVec
	OrderTransitionsTotal   *prometheus.CounterVec
	OrderEventsFailedTotal  prometheus.Counter
	BroadcastRecipientsLast prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SourceFetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_source_fetch_total",
				Help: "Upstream price fetches by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		SourceFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rate_source_fetch_duration_seconds",
				Help:    "Upstream price fetch latency",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"source"},
		),
		RateResolvedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_resolved_total",
				Help: "Resolved rates by source tag",
			},
			[]string{"source"},
		),
		RateCacheTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_requests_total",
				Help: "Rate cache lookups by result",
			},
			[]string{"result"},
		),
		OrdersCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Created orders by rate type",
			},
			[]string{"rate_type"},
		),
		PricingRejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_pricing_rejected_total",
				Help: "Rejected pricing requests by reason",
			},
			[]string{"reason"},
		),
		OrderTransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_status_transitions_total",
				Help: "Order status transitions by target status",
			},
			[]string{"status"},
		),
		OrderEventsFailedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "order_events_publish_failed_total",
				Help: "Order events that could not be published",
			},
		),
		BroadcastRecipientsLast: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rate_broadcast_recipients",
				Help: "Clients reached by the last rate broadcast",
			},
		),
	}
}
