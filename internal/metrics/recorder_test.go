package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/gameshelf/internal/events"
)

type testRecorder struct {
	stageDurations  map[string]time.Duration
	rebuilds        int
	outcomes        map[OutcomeLabel]int
	documentResults map[string]map[ResultLabel]int
	games           int
	items           map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations:  map[string]time.Duration{},
		outcomes:        map[OutcomeLabel]int{},
		documentResults: map[string]map[ResultLabel]int{},
		items:           map[string]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, d time.Duration) {
	t.stageDurations[stage] += d
}
func (t *testRecorder) ObserveRebuildDuration(time.Duration) { t.rebuilds++ }
func (t *testRecorder) IncRebuildOutcome(o OutcomeLabel)     { t.outcomes[o]++ }
func (t *testRecorder) IncDocumentResult(stage string, result ResultLabel) {
	m, ok := t.documentResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.documentResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) SetGamesDiscovered(n int)                  { t.games = n }
func (t *testRecorder) SetItemsDiscovered(category string, n int) { t.items[category] = n }

func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestReporter_RecordsRun(t *testing.T) {
	rec := newTestRecorder()
	r := NewReporter(rec)
	r.now = fakeClock(time.Second)

	for _, e := range []events.Event{
		{Kind: events.RebuildStarted},
		{Kind: events.StageStarted, Stage: events.StageScan},
		{Kind: events.ScanComplete, Count: 2},
		{Kind: events.GameFound, Settings: 1, Expansions: 2},
		{Kind: events.GameFound, Expansions: 1},
		{Kind: events.StageStarted, Stage: events.StageIndex},
		{Kind: events.IndexWritten},
		{Kind: events.StageStarted, Stage: events.StageCore},
		{Kind: events.CoreInjected},
		{Kind: events.CoreSkipped, Reason: events.ReasonNoChildren},
		{Kind: events.StageStarted, Stage: events.StageBackLinks},
		{Kind: events.Unchanged},
		{Kind: events.Unchanged},
		{Kind: events.BackLinkSkipped},
		{Kind: events.RebuildComplete, Duration: 5 * time.Second},
	} {
		r.Report(e)
	}

	assert.Equal(t, 2, rec.games)
	assert.Equal(t, map[string]int{"settings": 1, "expansions": 3}, rec.items)
	assert.Equal(t, 1, rec.documentResults[events.StageIndex][ResultWritten])
	assert.Equal(t, 1, rec.documentResults[events.StageCore][ResultWritten])
	assert.Equal(t, 1, rec.documentResults[events.StageCore][ResultSkipped])
	assert.Equal(t, 2, rec.documentResults[events.StageBackLinks][ResultUnchanged])
	assert.Equal(t, 1, rec.documentResults[events.StageBackLinks][ResultSkipped])
	assert.Len(t, rec.stageDurations, 4)
	assert.Equal(t, time.Second, rec.stageDurations[events.StageScan])
	assert.Equal(t, 1, rec.rebuilds)
	assert.Equal(t, 1, rec.outcomes[OutcomeSuccess])
}

func TestReporter_FailureOutcomes(t *testing.T) {
	rec := newTestRecorder()
	r := NewReporter(rec)

	r.Report(events.Event{Kind: events.Failed, Err: errors.New("disk full")})
	r.Report(events.Event{Kind: events.Failed, Err: context.Canceled})

	assert.Equal(t, 1, rec.outcomes[OutcomeFailed])
	assert.Equal(t, 1, rec.outcomes[OutcomeCanceled])
	assert.Zero(t, rec.rebuilds)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NoopRecorder{}
	rec.ObserveStageDuration("scan", time.Second)
	rec.IncRebuildOutcome(OutcomeSuccess)
	NewReporter(nil).Report(events.Event{Kind: events.RebuildComplete})
}
