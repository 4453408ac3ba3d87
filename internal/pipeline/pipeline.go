// Package pipeline runs a rebuild: scan the content tree, regenerate the landing index, then
// re-inject navigation into core documents and back-links into settings and expansions.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/gameshelf/internal/content"
	"git.home.luguber.info/inful/gameshelf/internal/events"
	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
	"git.home.luguber.info/inful/gameshelf/internal/inject"
	"git.home.luguber.info/inful/gameshelf/internal/render"
)

// Result summarises a successful rebuild.
type Result struct {
	RunID    string
	Games    []content.Game
	Duration time.Duration
}

// Pipeline owns the components of a rebuild. It keeps no state between runs.
type Pipeline struct {
	opts     Options
	reporter events.Reporter
	renderer *render.IndexRenderer
	now      func() time.Time
}

// New creates a Pipeline; a nil reporter discards events.
func New(opts Options, reporter events.Reporter) (*Pipeline, error) {
	if reporter == nil {
		reporter = events.Noop{}
	}
	renderer, err := render.NewIndexRenderer(opts.Site, opts.Content.CoreFile)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to prepare index template").Fatal().Build()
	}
	return &Pipeline{opts: opts, reporter: reporter, renderer: renderer, now: time.Now}, nil
}

// Discover builds the content graph without writing anything.
func (p *Pipeline) Discover() ([]content.Game, error) {
	return content.NewBuilder(p.opts.Content).Build(p.opts.Root)
}

// Rebuild runs every stage once. ctx is checked between stages only; a stage in progress
// always completes. Per-document skips are reported, not returned; the first filesystem
// failure aborts the run.
func (p *Pipeline) Rebuild(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	report := events.ReporterFunc(func(e events.Event) {
		e.RunID = runID
		p.reporter.Report(e)
	})
	start := p.now()

	games, err := p.run(ctx, report)
	elapsed := p.now().Sub(start)
	if err != nil {
		report(events.Event{Kind: events.Failed, Err: err, Duration: elapsed})
		return nil, err
	}
	report(events.Event{Kind: events.RebuildComplete, Count: len(games), Duration: elapsed})
	return &Result{RunID: runID, Games: games, Duration: elapsed}, nil
}

func (p *Pipeline) run(ctx context.Context, report events.ReporterFunc) ([]content.Game, error) {
	report(events.Event{Kind: events.RebuildStarted})

	stage := func(name string) error {
		if err := ctx.Err(); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryBuild, "rebuild canceled").WithContext("stage", name).Build()
		}
		report(events.Event{Kind: events.StageStarted, Stage: name})
		return nil
	}

	if err := stage(events.StageScan); err != nil {
		return nil, err
	}
	games, err := p.Discover()
	if err != nil {
		return nil, err
	}
	report(events.Event{Kind: events.ScanComplete, Count: len(games)})
	for _, g := range games {
		report(events.Event{
			Kind:       events.GameFound,
			Game:       g.Name,
			Title:      g.Title,
			Path:       g.Path,
			Settings:   len(g.Settings),
			Expansions: len(g.Expansions),
		})
	}

	if err := stage(events.StageIndex); err != nil {
		return nil, err
	}
	if err := p.writeIndex(games, report); err != nil {
		return nil, err
	}

	if err := stage(events.StageCore); err != nil {
		return nil, err
	}
	core := inject.NewCoreInjector(report)
	for _, g := range games {
		if err := core.Inject(g); err != nil {
			return nil, err
		}
	}

	if err := stage(events.StageBackLinks); err != nil {
		return nil, err
	}
	back := inject.NewBackLinkInjector(p.opts.Content.CoreFile, p.opts.BackLinkLabel, report)
	for _, g := range games {
		for _, item := range g.Items() {
			if err := back.Inject(item, g); err != nil {
				return nil, err
			}
		}
	}
	return games, nil
}

// writeIndex renders the index and replaces the file unless it already holds the same bytes.
func (p *Pipeline) writeIndex(games []content.Game, report events.ReporterFunc) error {
	out, err := p.renderer.Render(games)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryBuild, "failed to render index").Fatal().Build()
	}

	path := filepath.Join(p.opts.Root, p.opts.IndexFile)
	ev := events.Event{Path: filepath.ToSlash(p.opts.IndexFile)}
	existing, err := os.ReadFile(path) // #nosec G304 -- index inside the content root
	switch {
	case err == nil && bytes.Equal(existing, out):
		ev.Kind = events.Unchanged
		report(ev)
		return nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return ferrors.FileSystemError(err, "failed to read index").WithContext("path", path).Build()
	}

	if err := inject.WriteFileAtomic(path, out); err != nil {
		return err
	}
	ev.Kind = events.IndexWritten
	report(ev)
	return nil
}
