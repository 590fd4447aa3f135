package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	buildDuration *prom.HistogramVec
	buildOutcome  *prom.CounterVec
	rebuilds      *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers build metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.buildDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "polydocs",
		Name:      "build_duration_seconds",
		Help:      "Duration of language site builds",
		Buckets:   prom.DefBuckets,
	}, []string{"language"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "polydocs",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by language and final status",
	}, []string{"language", "outcome"})
	pr.rebuilds = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "polydocs",
		Name:      "watch_rebuilds_total",
		Help:      "Watch-mode rebuilds by trigger",
	}, []string{"trigger"})

	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.rebuilds)
	return pr
}

func (pr *PrometheusRecorder) ObserveBuildDuration(language string, d time.Duration) {
	pr.buildDuration.WithLabelValues(language).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncBuildOutcome(language string, outcome OutcomeLabel) {
	pr.buildOutcome.WithLabelValues(language, string(outcome)).Inc()
}

func (pr *PrometheusRecorder) IncRebuild(trigger string) {
	pr.rebuilds.WithLabelValues(trigger).Inc()
}

// Handler exposes the recorder's registry for scraping.
func (pr *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(pr.registry, promhttp.HandlerOpts{})
}
