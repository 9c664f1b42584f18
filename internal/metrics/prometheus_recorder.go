package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration  *prom.HistogramVec
	stageResults   *prom.CounterVec
	documentBlocks prom.Histogram
	compileOutcome *prom.CounterVec
	buildDuration  prom.Histogram
	cacheResults   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mdc",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual compiler stages",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdc",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		documentBlocks: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "mdc",
			Name:      "document_blocks",
			Help:      "Number of block nodes per compiled document",
			Buckets:   prom.ExponentialBuckets(1, 4, 8),
		}),
		compileOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdc",
			Name:      "compile_outcomes_total",
			Help:      "Document compile outcomes by final status",
		}, []string{"outcome"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "mdc",
			Name:      "build_duration_seconds",
			Help:      "Total directory build duration",
			Buckets:   prom.DefBuckets,
		}),
		cacheResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdc",
			Name:      "cache_results_total",
			Help:      "Compile cache lookups by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.documentBlocks, pr.compileOutcome, pr.buildDuration, pr.cacheResults)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveDocumentBlocks(n int) {
	if p == nil {
		return
	}
	p.documentBlocks.Observe(float64(n))
}

func (p *PrometheusRecorder) IncCompileOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.compileOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCacheResult(hit bool) {
	if p == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheResults.WithLabelValues(res).Inc()
}
