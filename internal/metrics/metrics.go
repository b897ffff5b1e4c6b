// Package metrics exposes Prometheus collectors of the identity backend.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records backend metrics.
type Collector struct {
	logins          *prometheus.CounterVec
	identityLookups *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	rateLimited     prometheus.Counter
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		identityLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_identity_lookups_total",
			Help: "Identity lookups by transport and outcome.",
		}, []string{"transport", "outcome"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobboard_login_rate_limited_total",
			Help: "Login requests rejected by the rate limiter.",
		}),
	}

	reg.MustRegister(
		c.logins,
		c.identityLookups,
		c.httpStatus,
		c.requestLatency,
		c.rateLimited,
	)

	return c
}

// RecordLogin counts a login attempt.
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordIdentityLookup counts a /me lookup served over transport.
func (c *Collector) RecordIdentityLookup(transport, outcome string) {
	c.identityLookups.WithLabelValues(transport, outcome).Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordRequestLatency(d time.Duration) {
	c.requestLatency.Observe(d.Seconds())
}

func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
