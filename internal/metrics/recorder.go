package metrics

import "time"

// ResultLabel enumerates per-document results for counters.
type ResultLabel string

const (
	ResultWritten   ResultLabel = "written"
	ResultUnchanged ResultLabel = "unchanged"
	ResultSkipped   ResultLabel = "skipped"
)

// OutcomeLabel enumerates final rebuild outcomes.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for rebuilds. Implementations may forward to
// Prometheus or anything else.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRebuildDuration(d time.Duration)
	IncRebuildOutcome(outcome OutcomeLabel)
	IncDocumentResult(stage string, result ResultLabel)
	SetGamesDiscovered(n int)
	SetItemsDiscovered(category string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRebuildDuration(time.Duration)       {}
func (NoopRecorder) IncRebuildOutcome(OutcomeLabel)             {}
func (NoopRecorder) IncDocumentResult(string, ResultLabel)      {}
func (NoopRecorder) SetGamesDiscovered(int)                     {}
func (NoopRecorder) SetItemsDiscovered(string, int)             {}
