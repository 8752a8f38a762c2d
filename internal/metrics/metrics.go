// Package metrics exposes client-side Prometheus counters for the sync loop
// and the command executor.
//
// A nil *Metrics is valid and records nothing, so components can take one
// unconditionally.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "skillshare"

// Poll outcomes.
const (
	PollUpdated     = "updated"
	PollNotModified = "not_modified"
	PollError       = "error"
)

// Command results.
const (
	CommandOK    = "ok"
	CommandError = "error"
)

// Metrics owns a private registry so tests and multiple clients in one
// process do not collide on the global one.
type Metrics struct {
	registry *prometheus.Registry
	polls    *prometheus.CounterVec
	commands *prometheus.CounterVec
	talks    prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Long-poll requests by outcome.",
		}, []string{"outcome"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Mutation requests by kind and result.",
		}, []string{"kind", "result"}),
		talks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "talks",
			Help:      "Number of talks in the last observed snapshot.",
		}),
	}
	m.registry.MustRegister(m.polls, m.commands, m.talks)
	return m
}

// Poll counts one long-poll outcome.
func (m *Metrics) Poll(outcome string) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues(outcome).Inc()
}

// Command counts one finished mutation.
func (m *Metrics) Command(kind, result string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(kind, result).Inc()
}

// Talks records the size of the current talk list.
func (m *Metrics) Talks(n int) {
	if m == nil {
		return
	}
	m.talks.Set(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics: %w", err)
	}
	return nil
}
