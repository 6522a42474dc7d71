// Package metrics exposes Prometheus collectors for served assessments.
package metrics

import (
	"net/http"

	"github.com/mchmarny/cadrisk/pkg/risk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cadrisk"

// Recorder owns a private registry so tests and multiple servers do not
// collide on the global one.
type Recorder struct {
	registry    *prometheus.Registry
	assessments *prometheus.CounterVec
	violations  *prometheus.CounterVec
	scores      *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		assessments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed risk assessments by profile and band.",
		}, []string{"profile", "band"}),
		violations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_violations_total",
			Help:      "Rejected input fields by field name.",
		}, []string{"field"}),
		scores: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "score",
			Help:      "Distribution of computed risk scores by profile.",
			Buckets:   []float64{0.3, 0.7, 1, 5, 10, 15, 20, 50, 100, 500, 1000},
		}, []string{"profile"}),
	}
}

// ObserveAssessment records a successful assessment.
func (r *Recorder) ObserveAssessment(a *risk.Assessment) {
	if a == nil {
		return
	}
	r.assessments.WithLabelValues(a.Profile, a.Band.String()).Inc()
	r.scores.WithLabelValues(a.Profile).Observe(a.Score)
}

// ObserveViolations records each rejected field.
func (r *Recorder) ObserveViolations(list []risk.Violation) {
	for _, v := range list {
		r.violations.WithLabelValues(v.Field).Inc()
	}
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
