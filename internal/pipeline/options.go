package pipeline

import (
	"git.home.luguber.info/inful/gameshelf/internal/config"
	"git.home.luguber.info/inful/gameshelf/internal/content"
	"git.home.luguber.info/inful/gameshelf/internal/render"
)

// Options is everything a rebuild needs to know about the content tree.
type Options struct {
	Root          string
	Content       content.Options
	Site          render.Site
	IndexFile     string
	BackLinkLabel string
}

// FromConfig derives rebuild options for root from a loaded configuration.
func FromConfig(root string, cfg *config.Config) Options {
	order := content.ListingOrder
	if cfg.Content.Order == config.OrderName {
		order = content.NameOrder
	}
	return Options{
		Root: root,
		Content: content.Options{
			CoreFile:      cfg.Content.CoreFile,
			Extension:     cfg.Content.Extension,
			SettingsDir:   cfg.Content.SettingsDir,
			ExpansionsDir: cfg.Content.ExpansionsDir,
			Ignore:        cfg.Content.Ignore,
			Order:         order,
		},
		Site: render.Site{
			Title:      cfg.Site.Title,
			Subtitle:   cfg.Site.Subtitle,
			Stylesheet: cfg.Site.Stylesheet,
			FontsURL:   cfg.Site.FontsURL,
		},
		IndexFile:     cfg.Site.IndexFile,
		BackLinkLabel: cfg.Content.BackLinkLabel,
	}
}
