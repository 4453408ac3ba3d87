package content

import (
	"log/slog"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/gameshelf/internal/logfields"
)

// Builder turns a content root into the game graph.
type Builder struct {
	scanner *Scanner
	opts    Options
}

// NewBuilder creates a Builder for the given layout.
func NewBuilder(opts Options) *Builder {
	s := NewScanner(opts)
	return &Builder{scanner: s, opts: s.opts}
}

// Build returns one Game per directory under root that has a core document, in scanner
// order. Directories without one are skipped silently.
func (b *Builder) Build(root string) ([]Game, error) {
	dirs, err := b.scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	var games []Game
	for _, name := range dirs {
		dir := filepath.Join(root, name)
		if !b.scanner.HasCore(dir) {
			slog.Debug("Skipping directory without core document", logfields.Path(name))
			continue
		}
		game, err := b.buildGame(dir, name)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

func (b *Builder) buildGame(dir, name string) (Game, error) {
	corePath := filepath.Join(dir, b.opts.CoreFile)
	src, err := readDocument(corePath)
	if err != nil {
		return Game{}, err
	}
	title, subtitle := CoreTitles(src, name)

	settings, err := b.buildItems(dir, name, b.opts.SettingsDir)
	if err != nil {
		return Game{}, err
	}
	expansions, err := b.buildItems(dir, name, b.opts.ExpansionsDir)
	if err != nil {
		return Game{}, err
	}

	return Game{
		Name:       name,
		Path:       name,
		CorePath:   corePath,
		Title:      title,
		Subtitle:   subtitle,
		Settings:   settings,
		Expansions: expansions,
	}, nil
}

func (b *Builder) buildItems(gameDir, gameName, category string) ([]Item, error) {
	folder := filepath.Join(gameDir, category)
	files, err := b.scanner.ListItems(folder)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(files))
	for _, file := range files {
		abs := filepath.Join(folder, file)
		src, err := readDocument(abs)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{
			Name:     ItemName(src, file, b.opts.Extension),
			File:     file,
			Path:     path.Join(gameName, category, file),
			Category: category,
			AbsPath:  abs,
		})
	}
	return items, nil
}
