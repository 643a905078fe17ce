package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	resolveDuration prom.Histogram
	resolveOutcomes *prom.CounterVec
	resolveFailures *prom.CounterVec
	pagesDiscovered prom.Gauge
	nodesResolved   *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		resolveDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "navbuilder",
			Name:      "resolve_duration_seconds",
			Help:      "Total duration of navigation resolve runs",
			Buckets:   prom.DefBuckets,
		}),
		resolveOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "navbuilder",
			Name:      "resolve_outcomes_total",
			Help:      "Resolve run outcomes by final status",
		}, []string{"outcome"}),
		resolveFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "navbuilder",
			Name:      "resolve_failures_total",
			Help:      "Resolve failures by error category",
		}, []string{"category"}),
		pagesDiscovered: prom.NewGauge(prom.GaugeOpts{
			Namespace: "navbuilder",
			Name:      "pages_discovered",
			Help:      "Pages found by the last content discovery",
		}),
		nodesResolved: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "navbuilder",
			Name:      "nodes_resolved",
			Help:      "Resolved navigation nodes per locale for the last run",
		}, []string{"locale"}),
	}
	reg.MustRegister(pr.resolveDuration, pr.resolveOutcomes, pr.resolveFailures, pr.pagesDiscovered, pr.nodesResolved)
	return pr
}

func (pr *PrometheusRecorder) ObserveResolveDuration(d time.Duration) {
	pr.resolveDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncResolveOutcome(outcome string) {
	pr.resolveOutcomes.WithLabelValues(outcome).Inc()
}

func (pr *PrometheusRecorder) IncResolveFailure(category string) {
	pr.resolveFailures.WithLabelValues(category).Inc()
}

func (pr *PrometheusRecorder) SetPagesDiscovered(n int) {
	pr.pagesDiscovered.Set(float64(n))
}

func (pr *PrometheusRecorder) SetNodesResolved(locale string, n int) {
	pr.nodesResolved.WithLabelValues(locale).Set(float64(n))
}

// HTTPHandler serves Prometheus metrics for the registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
