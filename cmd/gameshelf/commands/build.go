package commands

import (
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/gameshelf/internal/events"
	"git.home.luguber.info/inful/gameshelf/internal/logfields"
	"git.home.luguber.info/inful/gameshelf/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics for this run to a textfile (overrides metrics.textfile)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	metricsPath := b.MetricsFile
	if metricsPath == "" {
		metricsPath = cfg.Metrics.Textfile
	}
	var reg *prom.Registry
	var extra []events.Reporter
	if metricsPath != "" {
		reg = prom.NewRegistry()
		extra = append(extra, metrics.NewReporter(metrics.NewPrometheusRecorder(reg)))
	}

	p, err := newPipeline(g, root, cfg, extra...)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	_, buildErr := p.Rebuild(ctx)

	// failed runs are worth recording too
	if reg != nil {
		if err := metrics.WriteTextfile(metricsPath, reg); err != nil {
			if buildErr != nil {
				slog.Warn("Metrics export failed", logfields.Path(metricsPath), logfields.Error(err))
				return buildErr
			}
			return err
		}
		slog.Debug("Wrote metrics textfile", logfields.Path(metricsPath))
	}
	return buildErr
}
