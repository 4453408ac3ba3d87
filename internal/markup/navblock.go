package markup

import (
	"strings"
)

// Link is one generated anchor.
type Link struct {
	Href string
	Text string
}

// Section is one navigation block: a label and its links.
type Section struct {
	Label string
	Links []Link
}

// RenderNavBlocks renders one navigation block per section, each followed by the blank line
// and indentation that separate it from whatever comes next.
func RenderNavBlocks(sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(`<div class="` + ClassNavBlock + `">` + "\n")
		b.WriteString(`    <span class="` + ClassNavLabel + `">` + s.Label + "</span>\n")
		for _, l := range s.Links {
			b.WriteString(`    <a href="` + l.Href + `">` + l.Text + "</a>\n")
		}
		b.WriteString("  </div>\n\n  ")
	}
	return b.String()
}

// anchorOrder is the priority order of insertion points for navigation blocks.
var anchorOrder = []Kind{KindOrnament, KindColophon, KindArticleClose}

// NavAnchor returns the marker navigation blocks are inserted before.
func (d *Document) NavAnchor() (Marker, bool) {
	for _, k := range anchorOrder {
		if m, ok := d.First(k); ok {
			return m, true
		}
	}
	return Marker{}, false
}

// navRemovals returns the edits deleting every navigation block. A block runs from its opening
// tag through its closing tag and any whitespace after it, but never past the start of the next
// block or anchor. Blocks nested in another block are removed with it.
func (d *Document) navRemovals() []Edit {
	var edits []Edit
	prevEnd := -1
	for _, m := range d.All(KindNavBlock) {
		if m.Start < prevEnd {
			continue // nested inside the previous block
		}
		end := m.End
		if m.Closed {
			// Markers inside the block go with it.
			next, hasNext := d.nextStart(m.End-1, KindNavBlock, KindOrnament, KindColophon, KindArticleClose)
			for end < len(d.src) && strings.IndexByte(whitespaceHTML, d.src[end]) >= 0 {
				end++
			}
			if hasNext && next < end {
				end = next
			}
		} else if next, hasNext := d.nextStart(m.Start, KindNavBlock, KindOrnament, KindColophon, KindArticleClose); hasNext {
			end = next
		}
		edits = append(edits, Edit{Start: m.Start, End: end})
		prevEnd = end
	}
	return edits
}

// ReplaceNavBlocks strips every navigation block from src and inserts blocks immediately
// before the first ornament, else the first colophon, else the closing </article>.
// When src has none of those anchors it is returned unchanged with ok == false.
func ReplaceNavBlocks(src, blocks string) (out string, ok bool, err error) {
	d := Parse(src)
	anchor, found := d.NavAnchor()
	if !found {
		return src, false, nil
	}
	edits := d.navRemovals()
	if blocks != "" {
		edits = append(edits, Edit{Start: anchor.Start, End: anchor.Start, Replacement: blocks})
	}
	out, err = ApplyEdits(src, edits)
	if err != nil {
		return src, false, err
	}
	return out, true, nil
}

// CountNavBlocks returns the number of top-level navigation blocks in src.
func CountNavBlocks(src string) int {
	return len(Parse(src).navRemovals())
}
