// Package metrics exposes Prometheus collectors for the identity service.
package metrics

import (
	"context"
	"net/http"
	"time"

	"identity/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's custom collectors.
type Metrics struct {
	registry       *prometheus.Registry
	signups        *prometheus.CounterVec
	signins        *prometheus.CounterVec
	gateRejections *prometheus.CounterVec
	hashDuration   *prometheus.HistogramVec
}

// New creates a registry with runtime collectors and the identity metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_signups_total",
			Help: "Signup attempts by outcome",
		}, []string{"outcome"}),
		signins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_signins_total",
			Help: "Signin attempts by outcome",
		}, []string{"outcome"}),
		gateRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_session_gate_rejections_total",
			Help: "Requests rejected by the session gate by reason",
		}, []string{"reason"}),
		hashDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "identity_password_hash_duration_seconds",
			Help:    "Time spent hashing or verifying passwords, including pool wait",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"op"}),
	}

	registry.MustRegister(m.signups, m.signins, m.gateRejections, m.hashDuration)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordSignup(outcome string) {
	m.signups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordSignin(outcome string) {
	m.signins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordGateRejection(reason string) {
	m.gateRejections.WithLabelValues(reason).Inc()
}

// InstrumentHasher times every hash and verify call made through h.
func (m *Metrics) InstrumentHasher(h service.PasswordHasher) service.PasswordHasher {
	return &timedHasher{next: h, duration: m.hashDuration}
}

type timedHasher struct {
	next     service.PasswordHasher
	duration *prometheus.HistogramVec
}

func (t *timedHasher) Hash(ctx context.Context, password string) (string, error) {
	defer t.observe("hash", time.Now())

	return t.next.Hash(ctx, password)
}

func (t *timedHasher) Verify(ctx context.Context, password, hash string) (bool, error) {
	defer t.observe("verify", time.Now())

	return t.next.Verify(ctx, password, hash)
}

func (t *timedHasher) NeedsRehash(hash string) bool {
	return t.next.NeedsRehash(hash)
}

func (t *timedHasher) observe(op string, start time.Time) {
	t.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
