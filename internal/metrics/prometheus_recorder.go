package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	items         *prom.CounterVec
	lastBuild     prom.Gauge
	lrClients     prom.Gauge
	lrBroadcasts  prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "kssg",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "kssg",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "kssg",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "kssg",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.items = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "kssg",
			Name:      "items_total",
			Help:      "Classified source items by kind",
		}, []string{"kind"})
		pr.lastBuild = prom.NewGauge(prom.GaugeOpts{
			Namespace: "kssg",
			Name:      "last_build_timestamp_seconds",
			Help:      "Unix time of the last finished build",
		})
		pr.lrClients = prom.NewGauge(prom.GaugeOpts{
			Namespace: "kssg",
			Name:      "livereload_clients",
			Help:      "Connected live reload clients",
		})
		pr.lrBroadcasts = prom.NewCounter(prom.CounterOpts{
			Namespace: "kssg",
			Name:      "livereload_broadcasts_total",
			Help:      "Reload notifications sent after rebuilds",
		})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.items, pr.lastBuild,
			pr.lrClients, pr.lrBroadcasts)
	})
	return pr
}

// Registry returns the registry the metrics are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
	p.lastBuild.SetToCurrentTime()
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddItems(kind string, n int) {
	if p == nil || p.items == nil {
		return
	}
	p.items.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) SetLiveReloadClients(n int) {
	if p == nil || p.lrClients == nil {
		return
	}
	p.lrClients.Set(float64(n))
}

func (p *PrometheusRecorder) IncLiveReloadBroadcasts() {
	if p == nil || p.lrBroadcasts == nil {
		return
	}
	p.lrBroadcasts.Inc()
}
