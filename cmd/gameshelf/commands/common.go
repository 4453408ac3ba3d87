package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gameshelf/internal/config"
	"git.home.luguber.info/inful/gameshelf/internal/events"
	"git.home.luguber.info/inful/gameshelf/internal/foundation/normalization"
	"git.home.luguber.info/inful/gameshelf/internal/pipeline"
)

// Global is shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer // friendly progress output
}

// CLI definition & global flags.
type CLI struct {
	Root    string           `short:"r" help:"Content root directory" default:"." type:"path"`
	Config  string           `short:"c" help:"Configuration file path (default: <root>/gameshelf.yaml)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" default:"1" help:"Regenerate the index and re-inject navigation (default)"`
	Discover DiscoverCmd `cmd:"" help:"Print the content graph as YAML without writing anything"`
	Check    CheckCmd    `cmd:"" help:"Verify that every internal link resolves to a file"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild whenever the content tree changes"`
	Init     InitCmd     `cmd:"" help:"Write a configuration file holding the defaults"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

var logLevels = normalization.NewNormalizer("log level", map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}, slog.LevelInfo)

// parseLogLevel honours GAMESHELF_LOG_LEVEL over the verbose flag.
func parseLogLevel(verbose bool) slog.Level {
	if level, ok := logLevels.Lookup(config.LogLevelFromEnv()); ok {
		return level
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// ConfigPath is --config, or gameshelf.yaml inside the root.
func (c *CLI) ConfigPath() string {
	if c.Config != "" {
		return c.Config
	}
	return filepath.Join(c.Root, config.DefaultFilename)
}

// LoadConfig loads the configuration for this invocation.
func (c *CLI) LoadConfig() (*config.Config, error) {
	return config.Load(c.ConfigPath())
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// newPipeline wires a pipeline reporting to the console, the log and any extra reporters.
func newPipeline(g *Global, root *CLI, cfg *config.Config, extra ...events.Reporter) (*pipeline.Pipeline, error) {
	reporters := append([]events.Reporter{events.NewConsole(g.stdout()), events.NewLog(g.logger())}, extra...)
	return pipeline.New(pipeline.FromConfig(root.Root, cfg), events.Multi(reporters...))
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
