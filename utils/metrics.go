package utils

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the application's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry          *prometheus.Registry
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	quotes            *prometheus.CounterVec
	draftSubmissions  *prometheus.CounterVec
	featuredCacheHits *prometheus.CounterVec
}

// NewMetrics creates the collectors on a fresh registry that also exposes
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordersphere",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ordersphere",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordersphere",
			Name:      "price_quotes_total",
			Help:      "Price quotes computed, by whether an offer applied.",
		}, []string{"offer_applied"}),
		draftSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordersphere",
			Name:      "draft_submissions_total",
			Help:      "Draft order submissions by result.",
		}, []string{"result"}),
		featuredCacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordersphere",
			Name:      "featured_offers_cache_total",
			Help:      "Featured offers cache lookups by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.quotes,
		m.draftSubmissions,
		m.featuredCacheHits,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) QuoteComputed(offerApplied bool) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(strconv.FormatBool(offerApplied)).Inc()
}

// DraftSubmitted records a submission attempt. result is "submitted",
// "rejected" or "error".
func (m *Metrics) DraftSubmitted(result string) {
	if m == nil {
		return
	}
	m.draftSubmissions.WithLabelValues(result).Inc()
}

func (m *Metrics) FeaturedCache(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.featuredCacheHits.WithLabelValues(outcome).Inc()
}

// MetricsMiddleware records every request against its route template.
func MetricsMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
