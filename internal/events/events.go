// Package events carries rebuild progress from the pipeline to whoever renders it.
//
// Pipeline components never print or log progress themselves; they hand structured Event
// values to a Reporter. The CLI decides how those are rendered (console lines, slog records,
// Prometheus counters) by composing reporters with Multi.
package events

import "time"

// Kind identifies what happened.
type Kind string

const (
	RebuildStarted   Kind = "rebuild-started"
	StageStarted     Kind = "stage-started"
	ScanComplete     Kind = "scan-complete"
	GameFound        Kind = "game-found"
	IndexWritten     Kind = "index-written"
	CoreInjected     Kind = "core-injected"
	CoreSkipped      Kind = "core-skipped"
	BackLinkInjected Kind = "back-link-injected"
	BackLinkSkipped  Kind = "back-link-skipped"
	Unchanged        Kind = "unchanged"
	RebuildComplete  Kind = "rebuild-complete"
	Failed           Kind = "error"
)

// Stage names carried by StageStarted.
const (
	StageScan      = "scan"
	StageIndex     = "index"
	StageCore      = "core"
	StageBackLinks = "back-links"
)

// Skip reasons.
const (
	ReasonNoChildren     = "no settings or expansions"
	ReasonMissingAnchor  = "missing ornament, colophon and article close"
	ReasonMissingArticle = "missing opening article tag"
)

// Event is one progress report. Only the fields relevant to Kind are set.
type Event struct {
	Kind       Kind
	RunID      string
	Stage      string
	Game       string // game directory name
	Title      string // game title, GameFound only
	Category   string
	Path       string // slash-separated path relative to the root
	Reason     string
	Count      int
	Settings   int
	Expansions int
	Duration   time.Duration
	Err        error
}

// Reporter receives events. Implementations are called synchronously from the pipeline.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

// Noop discards events.
type Noop struct{}

func (Noop) Report(Event) {}

type multi []Reporter

func (m multi) Report(e Event) {
	for _, r := range m {
		r.Report(e)
	}
}

// Multi fans an event out to every non-nil reporter, in order.
func Multi(reporters ...Reporter) Reporter {
	var out multi
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Recorder collects events in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Report(e Event) { r.Events = append(r.Events, e) }

// OfKind returns the recorded events of the given kind.
func (r *Recorder) OfKind(kind Kind) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
