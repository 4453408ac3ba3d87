package commands

import (
	"context"
	"time"

	"git.home.luguber.info/inful/gameshelf/internal/config"
	"git.home.luguber.info/inful/gameshelf/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period before a change triggers a rebuild (overrides watch.debounce)"`
	Interval time.Duration `help:"Also rebuild on this fixed interval; 0 disables (overrides watch.interval)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	p, err := newPipeline(g, root, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	// a broken tree is worth watching; only unusable roots stop here
	if _, err := p.Rebuild(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	watcher := watch.New(w.options(root, cfg), func(ctx context.Context) error {
		_, err := p.Rebuild(ctx)
		return err
	})
	return watcher.Run(ctx)
}

func (w *WatchCmd) options(root *CLI, cfg *config.Config) watch.Options {
	opts := watch.Options{
		Root:        root.Root,
		Debounce:    cfg.Watch.Debounce,
		Interval:    cfg.Watch.Interval,
		IgnoreDirs:  cfg.Content.Ignore,
		IgnoreFiles: []string{cfg.Site.IndexFile},
	}
	if w.Debounce > 0 {
		opts.Debounce = w.Debounce
	}
	if w.Interval > 0 {
		opts.Interval = w.Interval
	}
	return opts
}
