package events

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	for _, e := range []Event{
		{Kind: RebuildStarted},
		{Kind: ScanComplete, Count: 1},
		{Kind: GameFound, Game: "Alpha", Title: "Alpha", Settings: 0, Expansions: 1},
		{Kind: StageStarted, Stage: StageCore},
		{Kind: CoreInjected, Path: "Alpha/core.html"},
		{Kind: CoreSkipped, Path: "Beta/core.html", Reason: ReasonNoChildren},
		{Kind: CoreSkipped, Path: "Gamma/core.html", Reason: ReasonMissingAnchor},
		{Kind: Unchanged, Path: "Delta/core.html"},
		{Kind: RebuildComplete},
	} {
		c.Report(e)
	}

	want := "Building game index...\n" +
		"\nFound 1 game(s):\n" +
		"  - Alpha (0 setting(s), 1 expansion(s))\n" +
		"\nInjecting content links into core files...\n" +
		"  Injected content links into Alpha/core.html\n" +
		"  Skipped Gamma/core.html (missing ornament, colophon and article close)\n" +
		"  Up to date Delta/core.html\n" +
		"\nBuild complete!\n"
	assert.Equal(t, want, buf.String())
}

func TestMulti(t *testing.T) {
	var a, b Recorder
	var calls int
	r := Multi(&a, nil, &b, ReporterFunc(func(Event) { calls++ }))

	r.Report(Event{Kind: GameFound, Game: "Alpha"})
	r.Report(Event{Kind: CoreInjected, Game: "Alpha"})

	assert.Len(t, a.Events, 2)
	assert.Equal(t, a.Events, b.Events)
	assert.Equal(t, 2, calls)
	assert.Len(t, a.OfKind(CoreInjected), 1)
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := NewLog(logger)

	l.Report(Event{Kind: CoreSkipped, RunID: "r1", Game: "Gamma", Path: "Gamma/core.html", Reason: ReasonMissingAnchor})
	l.Report(Event{Kind: Failed, RunID: "r1", Err: errors.New("disk full")})

	out := buf.String()
	assert.Contains(t, out, `level=WARN msg="Skipped document" run_id=r1 game=Gamma path=Gamma/core.html`)
	assert.Contains(t, out, `level=ERROR msg="Rebuild failed" run_id=r1 error="disk full"`)
}
