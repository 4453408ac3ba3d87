package commands

import (
	"fmt"

	"git.home.luguber.info/inful/gameshelf/internal/config"
	"git.home.luguber.info/inful/gameshelf/internal/content"
	"git.home.luguber.info/inful/gameshelf/internal/linkverify"
	"git.home.luguber.info/inful/gameshelf/internal/pipeline"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct{}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	games, err := content.NewBuilder(pipelineContent(root, cfg)).Build(root.Root)
	if err != nil {
		return err
	}

	report, verr := linkverify.NewVerifier(root.Root, cfg.Site.IndexFile).Verify(games)
	if report == nil {
		return verr
	}
	out := g.stdout()
	_, _ = fmt.Fprintf(out, "Checked %d link(s) in %d page(s)\n", report.Links, report.Pages)
	for _, b := range report.Broken {
		_, _ = fmt.Fprintf(out, "  broken: %s -> %s (%s)\n", b.Page, b.URL, b.Target)
	}
	if verr == nil {
		_, _ = fmt.Fprintln(out, "All links resolve.")
	}
	return verr
}

func pipelineContent(root *CLI, cfg *config.Config) content.Options {
	return pipeline.FromConfig(root.Root, cfg).Content
}
