package render

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"text/template"

	"git.home.luguber.info/inful/gameshelf/internal/content"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

// Site carries the page-level strings of the landing index.
type Site struct {
	Title      string
	Subtitle   string
	Stylesheet string
	FontsURL   string
}

// IndexRenderer renders the landing index. Render is pure: the same games always produce the
// same bytes. Strings from the content tree are inserted verbatim; fragments are first-party HTML.
type IndexRenderer struct {
	site Site
	tpl  *template.Template
}

// NewIndexRenderer parses the embedded index template. coreFile is the core document filename
// each game card links to.
func NewIndexRenderer(site Site, coreFile string) (*IndexRenderer, error) {
	funcs := template.FuncMap{
		"corePath": func(g content.Game) string { return path.Join(g.Path, coreFile) },
	}
	tpl, err := template.New("index.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return &IndexRenderer{site: site, tpl: tpl}, nil
}

// Render lists every game linking its core document and every expansion linking its item.
// Settings are deliberately absent; they are reachable from each core document.
func (r *IndexRenderer) Render(games []content.Game) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Site  Site
		Games []content.Game
	}{Site: r.site, Games: games}
	if err := r.tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("exec index template: %w", err)
	}
	return buf.Bytes(), nil
}
