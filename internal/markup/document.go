package markup

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Class names that make up the markup contract.
const (
	ClassSubtitle  = "subtitle"
	ClassNavBlock  = "settings-links"
	ClassNavLabel  = "settings-label"
	ClassBackLink  = "back-link"
	ClassOrnament  = "ornament"
	ClassColophon  = "colophon"
	ClassArticle   = "manuscript"
	headingTag     = "h1"
	articleTag     = "article"
	subtitleTag    = "div"
	backLinkTag    = "a"
	whitespaceHTML = " \t\n\r\f"
)

// Kind identifies a marker.
type Kind int

const (
	KindHeading Kind = iota
	KindSubtitle
	KindNavBlock
	KindBackLink
	KindOrnament
	KindColophon
	KindArticleOpen
	KindArticleClose
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindSubtitle:
		return "subtitle"
	case KindNavBlock:
		return "navigation block"
	case KindBackLink:
		return "back-link"
	case KindOrnament:
		return "ornament"
	case KindColophon:
		return "colophon"
	case KindArticleOpen:
		return "article open"
	case KindArticleClose:
		return "article close"
	default:
		return "unknown"
	}
}

// Marker is a located marker element.
//
// Start is the offset of the opening tag. OpenEnd is the offset just past the opening tag.
// End is the offset just past the matching closing tag when Closed is true, else OpenEnd.
type Marker struct {
	Kind    Kind
	Start   int
	OpenEnd int
	End     int
	Closed  bool
	Text    string // raw inner text, heading and subtitle only
}

// Document is a source text plus the markers found in it, in document order.
type Document struct {
	src     string
	markers []Marker
}

type token struct {
	typ     html.TokenType
	tag     string
	classes []string
	start   int
	end     int
}

// Parse scans src for markers. It never fails: text that does not tokenize as the expected
// elements simply produces no markers.
func Parse(src string) *Document {
	toks := tokenize(src)
	d := &Document{src: src}
	for i, t := range toks {
		switch t.typ {
		case html.StartTagToken, html.SelfClosingTagToken:
			if m, ok := markerAt(src, toks, i); ok {
				d.markers = append(d.markers, m)
			}
		case html.EndTagToken:
			if t.tag == articleTag {
				d.markers = append(d.markers, Marker{Kind: KindArticleClose, Start: t.start, OpenEnd: t.end, End: t.end, Closed: true})
			}
		}
	}
	return d
}

// Source returns the text the document was parsed from.
func (d *Document) Source() string { return d.src }

// First returns the first marker of the given kind.
func (d *Document) First(kind Kind) (Marker, bool) {
	for _, m := range d.markers {
		if m.Kind == kind {
			return m, true
		}
	}
	return Marker{}, false
}

// All returns every marker of the given kind in document order.
func (d *Document) All(kind Kind) []Marker {
	var out []Marker
	for _, m := range d.markers {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// nextStart returns the start of the first marker of one of kinds that begins after offset.
func (d *Document) nextStart(offset int, kinds ...Kind) (int, bool) {
	for _, m := range d.markers {
		if m.Start > offset && slices.Contains(kinds, m.Kind) {
			return m.Start, true
		}
	}
	return 0, false
}

func tokenize(src string) []token {
	z := html.NewTokenizer(strings.NewReader(src))
	var toks []token
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return toks
		}
		raw := z.Raw()
		t := token{typ: tt, start: offset, end: offset + len(raw)}
		offset = t.end
		if tt == html.StartTagToken || tt == html.EndTagToken || tt == html.SelfClosingTagToken {
			name, hasAttr := z.TagName()
			t.tag = string(name)
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "class" {
					t.classes = strings.Fields(string(val))
				}
			}
		}
		toks = append(toks, t)
	}
}

func markerAt(src string, toks []token, i int) (Marker, bool) {
	t := toks[i]
	has := func(class string) bool { return slices.Contains(t.classes, class) }
	m := Marker{Start: t.start, OpenEnd: t.end, End: t.end}

	switch {
	case t.tag == headingTag:
		text, end, ok := plainText(src, toks, i)
		if !ok {
			return Marker{}, false
		}
		m.Kind, m.Text, m.End, m.Closed = KindHeading, text, end, true
	case t.tag == subtitleTag && has(ClassSubtitle):
		text, end, ok := plainText(src, toks, i)
		if !ok {
			return Marker{}, false
		}
		m.Kind, m.Text, m.End, m.Closed = KindSubtitle, text, end, true
	case has(ClassNavBlock):
		m.Kind = KindNavBlock
		m.End, m.Closed = closeOf(toks, i)
	case t.tag == backLinkTag && has(ClassBackLink):
		m.Kind = KindBackLink
		m.End, m.Closed = closeOf(toks, i)
	case has(ClassOrnament):
		m.Kind = KindOrnament
	case has(ClassColophon):
		m.Kind = KindColophon
	case t.tag == articleTag && has(ClassArticle):
		m.Kind = KindArticleOpen
	default:
		return Marker{}, false
	}
	// A self-closing tag has no content, so it can only serve as an anchor.
	if t.typ == html.SelfClosingTagToken && m.Kind != KindOrnament && m.Kind != KindColophon {
		return Marker{}, false
	}
	if !m.Closed {
		m.End = t.end
	}
	return m, true
}

// plainText returns the raw text between the start tag at i and its end tag, provided
// everything in between is text and the trimmed text is not empty.
func plainText(src string, toks []token, i int) (string, int, bool) {
	tag := toks[i].tag
	start := toks[i].end
	for j := i + 1; j < len(toks); j++ {
		switch {
		case toks[j].typ == html.TextToken:
			continue
		case toks[j].typ == html.EndTagToken && toks[j].tag == tag:
			text := strings.Trim(src[start:toks[j].start], whitespaceHTML)
			if text == "" {
				return "", 0, false
			}
			return text, toks[j].end, true
		default:
			return "", 0, false
		}
	}
	return "", 0, false
}

// closeOf finds the end of the element opened at i by counting nested tags of the same name.
func closeOf(toks []token, i int) (int, bool) {
	tag := toks[i].tag
	depth := 0
	for j := i + 1; j < len(toks); j++ {
		if toks[j].tag != tag {
			continue
		}
		switch toks[j].typ {
		case html.StartTagToken:
			depth++
		case html.EndTagToken:
			if depth == 0 {
				return toks[j].end, true
			}
			depth--
		}
	}
	return toks[i].end, false
}
