package metrics

import (
	"context"
	"errors"
	"time"

	"git.home.luguber.info/inful/gameshelf/internal/events"
)

// Reporter turns rebuild events into Recorder calls. Stage durations are measured between
// consecutive StageStarted events, so it must see every event of a run in order.
type Reporter struct {
	rec   Recorder
	now   func() time.Time
	stage string
	began time.Time

	settings   int
	expansions int
}

// NewReporter creates a Reporter; a nil rec records nothing.
func NewReporter(rec Recorder) *Reporter {
	if rec == nil {
		rec = NoopRecorder{}
	}
	return &Reporter{rec: rec, now: time.Now}
}

func (r *Reporter) Report(e events.Event) {
	switch e.Kind {
	case events.RebuildStarted:
		r.stage = ""
		r.settings, r.expansions = 0, 0
	case events.StageStarted:
		r.endStage()
		r.stage, r.began = e.Stage, r.now()
	case events.ScanComplete:
		r.rec.SetGamesDiscovered(e.Count)
		r.rec.SetItemsDiscovered("settings", 0)
		r.rec.SetItemsDiscovered("expansions", 0)
	case events.GameFound:
		r.settings += e.Settings
		r.expansions += e.Expansions
		r.rec.SetItemsDiscovered("settings", r.settings)
		r.rec.SetItemsDiscovered("expansions", r.expansions)
	case events.IndexWritten, events.CoreInjected, events.BackLinkInjected:
		r.rec.IncDocumentResult(r.stage, ResultWritten)
	case events.Unchanged:
		r.rec.IncDocumentResult(r.stage, ResultUnchanged)
	case events.CoreSkipped, events.BackLinkSkipped:
		r.rec.IncDocumentResult(r.stage, ResultSkipped)
	case events.RebuildComplete:
		r.endStage()
		r.rec.ObserveRebuildDuration(e.Duration)
		r.rec.IncRebuildOutcome(OutcomeSuccess)
	case events.Failed:
		r.endStage()
		if e.Duration > 0 {
			r.rec.ObserveRebuildDuration(e.Duration)
		}
		if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
			r.rec.IncRebuildOutcome(OutcomeCanceled)
		} else {
			r.rec.IncRebuildOutcome(OutcomeFailed)
		}
	}
}

func (r *Reporter) endStage() {
	if r.stage == "" {
		return
	}
	r.rec.ObserveStageDuration(r.stage, r.now().Sub(r.began))
	r.stage = ""
}
