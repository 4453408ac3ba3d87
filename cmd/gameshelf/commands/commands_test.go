package commands

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/gameshelf/internal/config"
	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
	"git.home.luguber.info/inful/gameshelf/internal/linkverify"
	helpers "git.home.luguber.info/inful/gameshelf/internal/testutil/testutils"
)

func writeSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		"Alpha/core.html":            "<article class=\"manuscript\">\n  <h1>Alpha</h1>\n  <div class=\"subtitle\">A Game</div>\n</article>\n",
		"Alpha/Expansions/wild.html": "<article class=\"manuscript\">\n  <h1>Wild West</h1>\n</article>\n",
		"Bound/styles.css":           "body {}",
	})
	return root
}

func testGlobal() (*Global, *bytes.Buffer) {
	var out bytes.Buffer
	return &Global{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), Stdout: &out}, &out
}

func TestBuildCmd_WritesSiteAndMetrics(t *testing.T) {
	root := writeSite(t)
	g, out := testGlobal()
	metricsPath := filepath.Join(t.TempDir(), "gameshelf.prom")

	err := (&BuildCmd{MetricsFile: metricsPath}).Run(g, &CLI{Root: root})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Building game index...")
	assert.Contains(t, out.String(), "  - Alpha (0 setting(s), 1 expansion(s))")
	assert.Contains(t, out.String(), "Build complete!")

	helpers.NewFileAssertions(t, root).
		AssertFileContains("index.html", `<a href="Alpha/Expansions/wild.html">Wild West</a>`).
		AssertOccurrences("Alpha/Expansions/wild.html", `class="back-link"`, 1)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gameshelf_games_discovered 1")
	assert.Contains(t, string(data), `gameshelf_rebuild_outcomes_total{outcome="success"} 1`)
}

func TestBuildCmd_MissingRoot(t *testing.T) {
	g, out := testGlobal()
	err := (&BuildCmd{}).Run(g, &CLI{Root: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
	assert.Contains(t, out.String(), "Build failed")
}

func TestDiscoverCmd_PrintsGraph(t *testing.T) {
	root := writeSite(t)
	before := helpers.Snapshot(t, root)
	g, out := testGlobal()

	require.NoError(t, (&DiscoverCmd{}).Run(g, &CLI{Root: root}))
	assert.Equal(t, before, helpers.Snapshot(t, root))

	var doc struct {
		Games []gameView `yaml:"games"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc.Games, 1)
	assert.Equal(t, gameView{
		Name:       "Alpha",
		Title:      "Alpha",
		Subtitle:   "A Game",
		Core:       "Alpha/core.html",
		Expansions: []itemView{{Name: "Wild West", Path: "Alpha/Expansions/wild.html"}},
	}, doc.Games[0])
}

func TestCheckCmd(t *testing.T) {
	root := writeSite(t)
	g, _ := testGlobal()
	require.NoError(t, (&BuildCmd{}).Run(g, &CLI{Root: root}))

	g, out := testGlobal()
	require.NoError(t, (&CheckCmd{}).Run(g, &CLI{Root: root}))
	assert.Contains(t, out.String(), "All links resolve.")

	require.NoError(t, os.Remove(filepath.Join(root, "Alpha", "Expansions", "wild.html")))
	g, out = testGlobal()
	err := (&CheckCmd{}).Run(g, &CLI{Root: root})
	require.Error(t, err)
	assert.ErrorIs(t, err, linkverify.ErrBrokenLinks)
	assert.Contains(t, out.String(), "broken: index.html -> Alpha/Expansions/wild.html")
	assert.Equal(t, 3, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestInitCmd(t *testing.T) {
	root := t.TempDir()
	g, out := testGlobal()
	cli := &CLI{Root: root}

	require.NoError(t, (&InitCmd{}).Run(g, cli))
	assert.Contains(t, out.String(), "Initialized successfully")

	cfg, err := config.Load(filepath.Join(root, config.DefaultFilename))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	err = (&InitCmd{}).Run(g, cli)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	require.NoError(t, (&InitCmd{Force: true}).Run(g, cli))
}

func TestCLI_ConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join("games", "gameshelf.yaml"), (&CLI{Root: "games"}).ConfigPath())
	assert.Equal(t, "custom.yaml", (&CLI{Root: "games", Config: "custom.yaml"}).ConfigPath())
}

func TestParseLogLevel(t *testing.T) {
	t.Setenv("GAMESHELF_LOG_LEVEL", "")
	assert.Equal(t, slog.LevelInfo, parseLogLevel(false))
	assert.Equal(t, slog.LevelDebug, parseLogLevel(true))

	t.Setenv("GAMESHELF_LOG_LEVEL", "WARN")
	assert.Equal(t, slog.LevelWarn, parseLogLevel(true))
}

func TestWatchCmd_Options(t *testing.T) {
	cfg := config.Default()
	opts := (&WatchCmd{}).options(&CLI{Root: "games"}, cfg)
	assert.Equal(t, 300*time.Millisecond, opts.Debounce)
	assert.Zero(t, opts.Interval)
	assert.Equal(t, []string{"index.html"}, opts.IgnoreFiles)
	assert.Contains(t, opts.IgnoreDirs, "node_modules")

	opts = (&WatchCmd{Debounce: time.Second, Interval: time.Minute}).options(&CLI{Root: "games"}, cfg)
	assert.Equal(t, time.Second, opts.Debounce)
	assert.Equal(t, time.Minute, opts.Interval)
}

func TestCLI_ParsesDefaultCommand(t *testing.T) {
	t.Setenv("GAMESHELF_LOG_LEVEL", "error")
	root := writeSite(t)
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"--root", root})
	require.NoError(t, err)
	assert.Equal(t, "build", kctx.Command())

	g, out := testGlobal()
	require.NoError(t, kctx.Run(g, &cli))
	assert.Contains(t, out.String(), "Build complete!")
	helpers.NewFileAssertions(t, root).AssertFileExists("index.html")
}
