// Package prometheus instruments the blogtext services with Prometheus
// metrics.
package prometheus

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "blogtext"

// Metrics holds the collectors shared by the instrumented services.
type Metrics struct {
	extractions *prom.CounterVec
	duration    *prom.HistogramVec
	fetches     *prom.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prom.Registerer) (*Metrics, error) {
	m := &Metrics{
		extractions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Extractions by outcome code and winning strategy.",
		}, []string{"code", "strategy", "confidence"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Time spent on one extraction, fetch included.",
			Buckets:   []float64{.1, .25, .5, 1, 2, 4, 8, 15, 30},
		}, []string{"code"}),
		fetches: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Fetches by outcome code.",
		}, []string{"code"}),
	}
	for _, c := range []prom.Collector{m.extractions, m.duration, m.fetches} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// outcome returns the label value for an error code.
func outcome(code string) string {
	if code == "" {
		return "ok"
	}
	return code
}
