// Package metrics exports edit outcomes as Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the dispatcher counters.
type Metrics struct {
	registry *prometheus.Registry
	updates  *prometheus.CounterVec
	discards *prometheus.CounterVec
}

// New creates the counters on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		updates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabula_cell_updates_total",
				Help: "Total number of applied cell edits",
			},
			[]string{"field"},
		),
		discards: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabula_cell_discards_total",
				Help: "Total number of dropped cell edits",
			},
			[]string{"field", "reason"},
		),
	}
	m.registry.MustRegister(m.updates, m.discards)
	return m
}

// Hooks returns dispatcher hooks that record every outcome.
func (m *Metrics) Hooks() domain.EditHooks {
	return domain.EditHooks{
		OnApply: func(e *domain.EditEvent) {
			m.updates.WithLabelValues(e.Intent.Field).Inc()
		},
		OnDiscard: func(e *domain.EditEvent) {
			m.discards.WithLabelValues(e.Intent.Field, e.Reason).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and embedding.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
