package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
)

const namespace = "gameshelf"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	stageDuration   *prom.HistogramVec
	rebuildDuration prom.Histogram
	rebuildOutcome  *prom.CounterVec
	documentResults *prom.CounterVec
	games           prom.Gauge
	items           *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg. A nil reg gets a private
// registry so repeated construction in tests never collides with the global one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual rebuild stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.rebuildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Total rebuild duration",
			Buckets:   prom.DefBuckets,
		})
		pr.rebuildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rebuild_outcomes_total",
			Help:      "Rebuild outcomes by final status",
		}, []string{"outcome"})
		pr.documentResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents processed by stage and result",
		}, []string{"stage", "result"})
		pr.games = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "games_discovered",
			Help:      "Games found by the last rebuild",
		})
		pr.items = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "items_discovered",
			Help:      "Settings and expansions found by the last rebuild",
		}, []string{"category"})
		reg.MustRegister(pr.stageDuration, pr.rebuildDuration, pr.rebuildOutcome, pr.documentResults, pr.games, pr.items)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRebuildDuration(d time.Duration) {
	if p == nil || p.rebuildDuration == nil {
		return
	}
	p.rebuildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRebuildOutcome(outcome OutcomeLabel) {
	if p == nil || p.rebuildOutcome == nil {
		return
	}
	p.rebuildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncDocumentResult(stage string, result ResultLabel) {
	if p == nil || p.documentResults == nil {
		return
	}
	p.documentResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) SetGamesDiscovered(n int) {
	if p == nil || p.games == nil {
		return
	}
	p.games.Set(float64(n))
}

func (p *PrometheusRecorder) SetItemsDiscovered(category string, n int) {
	if p == nil || p.items == nil {
		return
	}
	p.items.WithLabelValues(category).Set(float64(n))
}

// WriteTextfile writes everything gathered from g to path in the Prometheus text format. The
// file is replaced atomically.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return ferrors.FileSystemError(err, "failed to write metrics textfile").WithContext("path", path).Build()
	}
	return nil
}
