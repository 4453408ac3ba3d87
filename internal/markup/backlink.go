package markup

import "strings"

// RenderBackLink renders the back-link element.
func RenderBackLink(href, label string) string {
	return `<a class="` + ClassBackLink + `" href="` + href + `">` + label + `</a>`
}

// backLinkRemovals deletes each back-link together with the whitespace in front of it.
func (d *Document) backLinkRemovals() []Edit {
	var edits []Edit
	floor := 0
	for _, m := range d.All(KindBackLink) {
		if m.Start < floor {
			continue
		}
		start := m.Start
		for start > floor && strings.IndexByte(whitespaceHTML, d.src[start-1]) >= 0 {
			start--
		}
		edits = append(edits, Edit{Start: start, End: m.End})
		floor = m.End
	}
	return edits
}

// ReplaceBackLink strips every back-link from src and, when src has an opening
// <article class="manuscript"> tag, inserts link directly after it. inserted reports whether
// the link was placed; old links are stripped either way.
func ReplaceBackLink(src, link string) (out string, inserted bool, err error) {
	d := Parse(src)
	edits := d.backLinkRemovals()
	if open, ok := d.First(KindArticleOpen); ok {
		edits = append(edits, Edit{Start: open.OpenEnd, End: open.OpenEnd, Replacement: "\n\n  " + link})
		inserted = true
	}
	out, err = ApplyEdits(src, edits)
	if err != nil {
		return src, false, err
	}
	return out, inserted, nil
}

// CountBackLinks returns the number of back-links in src.
func CountBackLinks(src string) int {
	return len(Parse(src).All(KindBackLink))
}
