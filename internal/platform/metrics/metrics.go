package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeCached   = "cached"
	OutcomeStatus   = "status"
	OutcomeFailed   = "failed"
	OutcomeThrottle = "throttled"
)

// Metrics holds Prometheus counters and gauges for the site.
type Metrics struct {
	registry           *prometheus.Registry
	requestsTotal      prometheus.Counter
	errorsTotal        prometheus.Counter
	pagesRenderedTotal *prometheus.CounterVec
	upstreamTotal      *prometheus.CounterVec
	cacheEntries       prometheus.Gauge
}

// New creates and registers Prometheus metrics for the site.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "site_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "site_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	pagesRenderedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "site_pages_rendered_total",
		Help: "Pages rendered, by page and locale",
	}, []string{"page", "locale"})
	upstreamTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "site_upstream_requests_total",
		Help: "Content API lookups, by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
	cacheEntries := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "site_content_cache_entries",
		Help: "Number of content API responses currently cached",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		pagesRenderedTotal,
		upstreamTotal,
		cacheEntries,
	)

	return &Metrics{
		registry:           registry,
		requestsTotal:      requestsTotal,
		errorsTotal:        errorsTotal,
		pagesRenderedTotal: pagesRenderedTotal,
		upstreamTotal:      upstreamTotal,
		cacheEntries:       cacheEntries,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncPageRendered counts one rendered page.
func (m *Metrics) IncPageRendered(page, locale string) {
	m.pagesRenderedTotal.WithLabelValues(page, locale).Inc()
}

// ObserveUpstream counts one content API lookup.
func (m *Metrics) ObserveUpstream(endpoint, outcome string) {
	m.upstreamTotal.WithLabelValues(endpoint, outcome).Inc()
}

// SetCacheEntries sets the content cache gauge.
func (m *Metrics) SetCacheEntries(n int) {
	m.cacheEntries.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values (e.g. cache size).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
