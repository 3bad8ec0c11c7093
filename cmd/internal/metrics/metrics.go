// Package metrics collects and exposes Prometheus metrics for authd.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the collection interface used by the auth handler and the
// session reaper, so they can be tested without a live registry.
type Recorder interface {
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordSessionCheck(authenticated bool)
	RecordSessionsPurged(count int64)
	RecordPurgeLatency(d time.Duration)
}

// Collector records authd metrics into a Prometheus registry.
type Collector struct {
	loginSuccess   prometheus.Counter
	loginFail      prometheus.Counter
	sessionChecks  *prometheus.CounterVec
	sessionsPurged prometheus.Counter
	purgeLatency   prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authd_login_success_total",
			Help: "Total successful logins.",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authd_login_fail_total",
			Help: "Total rejected logins (invalid credentials).",
		}),
		sessionChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authd_session_check_total",
			Help: "Session checks by outcome.",
		}, []string{"outcome"}),
		sessionsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authd_sessions_purged_total",
			Help: "Expired sessions removed by the reaper.",
		}),
		purgeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "authd_purge_latency_seconds",
			Help:    "Latency of reaper purge passes.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.loginSuccess,
		c.loginFail,
		c.sessionChecks,
		c.sessionsPurged,
		c.purgeLatency,
	)

	return c
}

// RecordLoginSuccess counts a successful login.
func (c *Collector) RecordLoginSuccess() { c.loginSuccess.Inc() }

// RecordLoginFailure counts a rejected login.
func (c *Collector) RecordLoginFailure() { c.loginFail.Inc() }

// RecordSessionCheck counts a session check by outcome.
func (c *Collector) RecordSessionCheck(authenticated bool) {
	outcome := "unauthenticated"
	if authenticated {
		outcome = "authenticated"
	}
	c.sessionChecks.WithLabelValues(outcome).Inc()
}

// RecordSessionsPurged counts sessions removed by a purge pass.
func (c *Collector) RecordSessionsPurged(count int64) {
	c.sessionsPurged.Add(float64(count))
}

// RecordPurgeLatency records how long a purge pass took.
func (c *Collector) RecordPurgeLatency(d time.Duration) {
	c.purgeLatency.Observe(d.Seconds())
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
