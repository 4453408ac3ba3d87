package inject

import (
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/gameshelf/internal/content"
	"git.home.luguber.info/inful/gameshelf/internal/events"
	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
	"git.home.luguber.info/inful/gameshelf/internal/markup"
)

// CoreInjector rewrites core documents so they link their settings and expansions.
type CoreInjector struct {
	reporter events.Reporter
}

// NewCoreInjector creates a CoreInjector; a nil reporter discards events.
func NewCoreInjector(reporter events.Reporter) *CoreInjector {
	if reporter == nil {
		reporter = events.Noop{}
	}
	return &CoreInjector{reporter: reporter}
}

// Inject replaces the navigation blocks of g's core document. Games without settings or
// expansions are not touched, and neither are documents that have no insertion anchor.
func (c *CoreInjector) Inject(g content.Game) error {
	rel := path.Join(g.Path, filepath.Base(g.CorePath))
	ev := events.Event{Game: g.Name, Path: rel}

	if !g.HasChildren() {
		ev.Kind, ev.Reason = events.CoreSkipped, events.ReasonNoChildren
		c.reporter.Report(ev)
		return nil
	}

	src, err := readFile(g.CorePath)
	if err != nil {
		return err
	}
	out, ok, err := markup.ReplaceNavBlocks(src, markup.RenderNavBlocks(NavSections(g)))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryMarkup, "failed to rewrite navigation blocks").
			Fatal().WithContext("path", g.CorePath).Build()
	}
	if !ok {
		ev.Kind, ev.Reason = events.CoreSkipped, events.ReasonMissingAnchor
		c.reporter.Report(ev)
		return nil
	}
	if out == src {
		ev.Kind = events.Unchanged
		c.reporter.Report(ev)
		return nil
	}
	if err := WriteFileAtomic(g.CorePath, []byte(out)); err != nil {
		return err
	}
	ev.Kind = events.CoreInjected
	c.reporter.Report(ev)
	return nil
}

// NavSections returns one section per non-empty category, settings first. Links are relative
// to the game directory.
func NavSections(g content.Game) []markup.Section {
	var sections []markup.Section
	for _, items := range [][]content.Item{g.Settings, g.Expansions} {
		if len(items) == 0 {
			continue
		}
		s := markup.Section{Label: items[0].Category}
		for _, it := range items {
			s.Links = append(s.Links, markup.Link{Href: path.Join(it.Category, it.File), Text: it.Name})
		}
		sections = append(sections, s)
	}
	return sections
}
