// Package metrics exposes Prometheus collectors for the promotion pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resto_ads"

// Metrics holds all collectors. A nil *Metrics is valid and records
// nothing, which keeps tests free of registry setup.
type Metrics struct {
	Promotions       *prometheus.CounterVec
	PromotionFailure *prometheus.CounterVec
	AdSetsCreated    *prometheus.CounterVec
	SweptPosts       *prometheus.CounterVec
	Webhooks         *prometheus.CounterVec
	PlatformLatency  *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. When reg also
// implements prometheus.Gatherer it is used by Handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		Promotions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotions_total",
			Help:      "Post promotions by result.",
		}, []string{"result"}),
		PromotionFailure: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotion_step_failures_total",
			Help:      "Failed promotions by pipeline step.",
		}, []string{"step"}),
		AdSetsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ad_sets_created_total",
			Help:      "Ad sets created by category.",
		}, []string{"category"}),
		SweptPosts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swept_posts_total",
			Help:      "Posts handled by the expiration sweep by result.",
		}, []string{"result"}),
		Webhooks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Inbound webhook deliveries by result.",
		}, []string{"result"}),
		PlatformLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ad_platform_request_duration_seconds",
			Help:      "Latency of ad platform calls by operation.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Handler serves the registered collectors.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) Promotion(result string) {
	if m == nil {
		return
	}
	m.Promotions.WithLabelValues(result).Inc()
}

func (m *Metrics) StepFailed(step string) {
	if m == nil {
		return
	}
	m.PromotionFailure.WithLabelValues(step).Inc()
}

func (m *Metrics) AdSetCreated(category string) {
	if m == nil {
		return
	}
	m.AdSetsCreated.WithLabelValues(category).Inc()
}

func (m *Metrics) Swept(result string) {
	if m == nil {
		return
	}
	m.SweptPosts.WithLabelValues(result).Inc()
}

func (m *Metrics) Webhook(result string) {
	if m == nil {
		return
	}
	m.Webhooks.WithLabelValues(result).Inc()
}

// ObservePlatform records the duration of an ad platform call started at
// start.
func (m *Metrics) ObservePlatform(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.PlatformLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
