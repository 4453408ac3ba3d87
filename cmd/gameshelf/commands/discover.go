package commands

import (
	"fmt"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/gameshelf/internal/content"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct{}

type itemView struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type gameView struct {
	Name       string     `yaml:"name"`
	Title      string     `yaml:"title"`
	Subtitle   string     `yaml:"subtitle,omitempty"`
	Core       string     `yaml:"core"`
	Settings   []itemView `yaml:"settings,omitempty"`
	Expansions []itemView `yaml:"expansions,omitempty"`
}

func (d *DiscoverCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	games, err := content.NewBuilder(pipelineContent(root, cfg)).Build(root.Root)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(g.stdout())
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"games": viewGames(games)}); err != nil {
		return fmt.Errorf("encode content graph: %w", err)
	}
	return enc.Close()
}

func viewGames(games []content.Game) []gameView {
	views := make([]gameView, 0, len(games))
	for _, g := range games {
		views = append(views, gameView{
			Name:       g.Name,
			Title:      g.Title,
			Subtitle:   g.Subtitle,
			Core:       path.Join(g.Path, filepath.Base(g.CorePath)),
			Settings:   viewItems(g.Settings),
			Expansions: viewItems(g.Expansions),
		})
	}
	return views
}

func viewItems(items []content.Item) []itemView {
	if len(items) == 0 {
		return nil
	}
	views := make([]itemView, 0, len(items))
	for _, it := range items {
		views = append(views, itemView{Name: it.Name, Path: it.Path})
	}
	return views
}
