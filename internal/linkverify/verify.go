// Package linkverify checks that the relative links in a built content tree resolve to files.
package linkverify

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/gameshelf/internal/content"
	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
	"git.home.luguber.info/inful/gameshelf/internal/logfields"
)

// ErrBrokenLinks is wrapped by the error Verify returns when any link is broken.
var ErrBrokenLinks = errors.New("broken links found")

// BrokenLink is one link whose target does not exist.
type BrokenLink struct {
	Page   string // slash-separated page path relative to the root
	URL    string
	Text   string
	Target string // resolved slash-separated path relative to the root
}

// Report summarises a verification run.
type Report struct {
	Pages  int
	Links  int
	Broken []BrokenLink
}

// Verifier checks the index, core and item documents under a root.
type Verifier struct {
	root      string
	indexFile string
}

// NewVerifier creates a Verifier for root. indexFile is the landing index filename.
func NewVerifier(root, indexFile string) *Verifier {
	return &Verifier{root: root, indexFile: indexFile}
}

// Pages lists the documents Verify checks, index first.
func Pages(indexFile string, games []content.Game) []string {
	pages := []string{indexFile}
	for _, g := range games {
		pages = append(pages, path.Join(g.Path, filepath.Base(g.CorePath)))
		for _, item := range g.Items() {
			pages = append(pages, item.Path)
		}
	}
	return pages
}

// Verify checks every internal link of every page. A missing index is reported as a
// filesystem error; broken links produce a Report and an error wrapping ErrBrokenLinks.
func (v *Verifier) Verify(games []content.Game) (*Report, error) {
	report := &Report{}
	for _, page := range Pages(v.indexFile, games) {
		links, err := ExtractLinks(filepath.Join(v.root, filepath.FromSlash(page)))
		if err != nil {
			return nil, err
		}
		report.Pages++
		for _, link := range links {
			if !ShouldVerifyLink(link) {
				continue
			}
			report.Links++
			target, ok := v.resolve(page, link.URL)
			if ok {
				continue
			}
			slog.Warn("Broken link", logfields.Path(page), slog.String("url", link.URL))
			report.Broken = append(report.Broken, BrokenLink{Page: page, URL: link.URL, Text: link.Text, Target: target})
		}
	}

	if len(report.Broken) > 0 {
		return report, ferrors.WrapError(fmt.Errorf("%d of %d: %w", len(report.Broken), report.Links, ErrBrokenLinks),
			ferrors.CategoryLinks, "link verification failed").
			Warning().WithContext("broken", len(report.Broken)).Build()
	}
	return report, nil
}

// resolve maps a link on page to a slash-separated root-relative path and reports whether a
// file exists there. A directory resolves to its index.html. Targets outside the root never
// resolve.
func (v *Verifier) resolve(page, linkURL string) (string, bool) {
	u, err := url.Parse(linkURL)
	if err != nil {
		return linkURL, false
	}
	if u.Path == "" {
		// query or fragment on the page itself
		return page, true
	}

	var target string
	if strings.HasPrefix(u.Path, "/") {
		target = path.Clean(strings.TrimPrefix(u.Path, "/"))
	} else {
		target = path.Join(path.Dir(page), u.Path)
	}
	if target == ".." || strings.HasPrefix(target, "../") {
		return target, false
	}

	full := filepath.Join(v.root, filepath.FromSlash(target))
	info, err := os.Stat(full)
	if err != nil {
		return target, false
	}
	if info.IsDir() {
		target = path.Join(target, "index.html")
		info, err = os.Stat(filepath.Join(full, "index.html"))
		if err != nil || info.IsDir() {
			return target, false
		}
	}
	return target, true
}
