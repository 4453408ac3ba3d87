package inject

import (
	"git.home.luguber.info/inful/gameshelf/internal/content"
	"git.home.luguber.info/inful/gameshelf/internal/events"
	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
	"git.home.luguber.info/inful/gameshelf/internal/markup"
)

// BackLinkInjector rewrites settings and expansion documents so they link back to their core
// document.
type BackLinkInjector struct {
	link     string
	reporter events.Reporter
}

// NewBackLinkInjector creates a BackLinkInjector. coreFile is the core document filename and
// label the link text.
func NewBackLinkInjector(coreFile, label string, reporter events.Reporter) *BackLinkInjector {
	if reporter == nil {
		reporter = events.Noop{}
	}
	return &BackLinkInjector{
		link:     markup.RenderBackLink("../"+coreFile, label),
		reporter: reporter,
	}
}

// Inject replaces the back-link of one item document. Documents without an opening article
// tag lose any stale back-links but get no new one.
func (b *BackLinkInjector) Inject(item content.Item, g content.Game) error {
	ev := events.Event{Game: g.Name, Category: item.Category, Path: item.Path}

	src, err := readFile(item.AbsPath)
	if err != nil {
		return err
	}
	out, inserted, err := markup.ReplaceBackLink(src, b.link)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryMarkup, "failed to rewrite back-link").
			Fatal().WithContext("path", item.AbsPath).Build()
	}

	if out != src {
		if err := WriteFileAtomic(item.AbsPath, []byte(out)); err != nil {
			return err
		}
	}

	switch {
	case !inserted:
		ev.Kind, ev.Reason = events.BackLinkSkipped, events.ReasonMissingArticle
	case out == src:
		ev.Kind = events.Unchanged
	default:
		ev.Kind = events.BackLinkInjected
	}
	b.reporter.Report(ev)
	return nil
}
