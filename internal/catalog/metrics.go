package catalog

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelOp     = "op"
	labelResult = "result"
)

type Metrics struct {
	Mutations   *prometheus.CounterVec
	Restaurants prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_mutations_total",
				Help: "Catalog mutations by operation and outcome",
			},
			[]string{labelOp, labelResult},
		),
		Restaurants: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalog_restaurants",
				Help: "Restaurants currently in the catalog",
			},
		),
	}

	reg.MustRegister(m.Mutations, m.Restaurants)
	return m
}

func (m *Metrics) mutation(op string, err error) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(op, resultLabel(err)).Inc()
}

func (m *Metrics) size(n int) {
	if m == nil {
		return
	}
	m.Restaurants.Set(float64(n))
}

func resultLabel(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPersistFailure):
		return "persist_failure"
	default:
		return "error"
	}
}
