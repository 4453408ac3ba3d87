package config

import (
	"slices"
	"time"
)

// DefaultFontsURL is the font stylesheet the landing index links by default.
const DefaultFontsURL = "https://fonts.googleapis.com/css2?family=Cinzel:wght@400;600;700;900" +
	"&family=Crimson+Pro:ital,wght@0,300;0,400;0,500;0,600;1,300;1,400&family=IM+Fell+English+SC&display=swap"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

var appliers = []DefaultApplier{
	siteDefaults{},
	contentDefaults{},
	watchDefaults{},
}

func applyDefaults(cfg *Config) {
	for _, a := range appliers {
		a.ApplyDefaults(cfg)
	}
}

type siteDefaults struct{}

func (siteDefaults) Domain() string { return "site" }

func (siteDefaults) ApplyDefaults(cfg *Config) {
	s := &cfg.Site
	if s.Title == "" {
		s.Title = "TTRPGs"
	}
	if s.Subtitle == "" {
		s.Subtitle = "A Collection of Tabletop Games"
	}
	if s.Stylesheet == "" {
		s.Stylesheet = "Bound/styles.css"
	}
	if s.FontsURL == "" {
		s.FontsURL = DefaultFontsURL
	}
	if s.IndexFile == "" {
		s.IndexFile = "index.html"
	}
}

type contentDefaults struct{}

func (contentDefaults) Domain() string { return "content" }

func (contentDefaults) ApplyDefaults(cfg *Config) {
	c := &cfg.Content
	if c.CoreFile == "" {
		c.CoreFile = "core.html"
	}
	if c.Extension == "" {
		c.Extension = ".html"
	}
	if c.SettingsDir == "" {
		c.SettingsDir = "Settings"
	}
	if c.ExpansionsDir == "" {
		c.ExpansionsDir = "Expansions"
	}
	if c.Ignore == nil {
		c.Ignore = []string{"node_modules", ".git", "index.html"}
	}
	// The generated index must never be mistaken for a game.
	if !slices.Contains(c.Ignore, cfg.Site.IndexFile) {
		c.Ignore = append(c.Ignore, cfg.Site.IndexFile)
	}
	if c.Order == "" {
		c.Order = OrderListing
	} else if o, ok := orderNames.Lookup(string(c.Order)); ok {
		c.Order = o
	}
	if c.BackLinkLabel == "" {
		c.BackLinkLabel = "← Back to Core Rules"
	}
}

type watchDefaults struct{}

func (watchDefaults) Domain() string { return "watch" }

func (watchDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.Watch.Interval < 0 {
		cfg.Watch.Interval = 0
	}
}
