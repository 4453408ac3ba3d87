package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gameshelf/internal/config"
	"git.home.luguber.info/inful/gameshelf/internal/content"
	"git.home.luguber.info/inful/gameshelf/internal/events"
	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
	"git.home.luguber.info/inful/gameshelf/internal/markup"
	helpers "git.home.luguber.info/inful/gameshelf/internal/testutil/testutils"
)

func newPipeline(t *testing.T, root string, reporter events.Reporter) *Pipeline {
	t.Helper()
	opts := FromConfig(root, config.Default())
	opts.Content.Order = content.NameOrder
	p, err := New(opts, reporter)
	require.NoError(t, err)
	return p
}

func manuscript(body string) string {
	return "<article class=\"manuscript\">\n  " + body + "\n</article>\n"
}

func TestRebuild_AlphaWildWest(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		"Alpha/core.html":            manuscript(`<h1>Alpha</h1><div class="subtitle">A Game</div>`),
		"Alpha/Expansions/wild.html": manuscript(`<h1>Wild West</h1>`),
	})

	res, err := newPipeline(t, root, nil).Rebuild(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Games, 1)
	assert.NotEmpty(t, res.RunID)

	fa := helpers.NewFileAssertions(t, root)
	fa.AssertFileContains("index.html", `<a href="Alpha/core.html" class="game-title">Alpha</a>`).
		AssertFileContains("index.html", `<a href="Alpha/Expansions/wild.html">Wild West</a>`)

	core, err := os.ReadFile(filepath.Join(root, "Alpha", "core.html"))
	require.NoError(t, err)
	assert.Equal(t, 1, markup.CountNavBlocks(string(core)))
	assert.Equal(t, 1, strings.Count(string(core), `<span class="settings-label">Expansions</span>`))
	assert.Equal(t, 1, strings.Count(string(core), "<a href="))
	assert.Contains(t, string(core), `<a href="Expansions/wild.html">Wild West</a>`)
	assert.NotContains(t, string(core), "Settings")

	item, err := os.ReadFile(filepath.Join(root, "Alpha", "Expansions", "wild.html"))
	require.NoError(t, err)
	assert.Equal(t, 1, markup.CountBackLinks(string(item)))
	assert.Contains(t, string(item), `<a class="back-link" href="../core.html">← Back to Core Rules</a>`)
}

func TestRebuild_AlphaWildWestBareFragments(t *testing.T) {
	root := t.TempDir()
	const (
		coreSrc = `<h1>Alpha</h1><div class="subtitle">A Game</div>`
		itemSrc = `<h1>Wild West</h1>`
	)
	helpers.WriteTree(t, root, map[string]string{
		"Alpha/core.html":            coreSrc,
		"Alpha/Expansions/wild.html": itemSrc,
	})
	rec := &events.Recorder{}

	_, err := newPipeline(t, root, rec).Rebuild(context.Background())
	require.NoError(t, err)

	// Without an article boundary there is nowhere to insert, so both documents stay as written.
	helpers.NewFileAssertions(t, root).
		AssertFileContains("index.html", `<a href="Alpha/core.html" class="game-title">Alpha</a>`).
		AssertFileContains("index.html", `<a href="Alpha/Expansions/wild.html">Wild West</a>`).
		AssertFileEquals("Alpha/core.html", coreSrc).
		AssertFileEquals("Alpha/Expansions/wild.html", itemSrc)

	coreSkips := rec.OfKind(events.CoreSkipped)
	require.Len(t, coreSkips, 1)
	assert.Equal(t, events.ReasonMissingAnchor, coreSkips[0].Reason)
	backSkips := rec.OfKind(events.BackLinkSkipped)
	require.Len(t, backSkips, 1)
	assert.Equal(t, events.ReasonMissingArticle, backSkips[0].Reason)
	assert.Empty(t, rec.OfKind(events.CoreInjected))
	assert.Empty(t, rec.OfKind(events.BackLinkInjected))
}

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		"Alpha/core.html":                manuscript("<h1>Alpha</h1>\n  <p>Rules.</p>\n\n  <div class=\"ornament\">❧</div>\n\n  <div class=\"colophon\">Printed</div>"),
		"Alpha/Settings/harbor.html":     manuscript("<h1>The Harbor</h1>"),
		"Alpha/Expansions/wild.html":     manuscript("<h1>Wild West</h1>"),
		"Alpha/Expansions/untitled.html": manuscript("<p>No heading.</p>"),
		"Beta/core.html":                 manuscript("<h1>Beta</h1>"),
		"Gamma/Settings/orphan.html":     manuscript("<h1>Orphan</h1>"),
		"Delta/core.html":                "<h1>Delta</h1>\n<p>No anchors here.</p>\n",
		"Delta/Expansions/extra.html":    "<h1>Extra</h1>\n",
	})
	return root
}

func TestRebuild_Idempotent(t *testing.T) {
	root := fixture(t)
	rec := &events.Recorder{}
	p := newPipeline(t, root, rec)

	_, err := p.Rebuild(context.Background())
	require.NoError(t, err)
	first := helpers.Snapshot(t, root)

	for i := 0; i < 2; i++ {
		_, err = p.Rebuild(context.Background())
		require.NoError(t, err)
		second := helpers.Snapshot(t, root)
		assert.Equal(t, helpers.SortedKeys(first), helpers.SortedKeys(second))
		assert.Equal(t, first, second)
	}

	// the second and third runs wrote nothing
	assert.Len(t, rec.OfKind(events.IndexWritten), 1)
	assert.Len(t, rec.OfKind(events.CoreInjected), 1)
	assert.Len(t, rec.OfKind(events.BackLinkInjected), 3)
	assert.Len(t, rec.OfKind(events.RebuildComplete), 3)
}

func TestRebuild_InjectionScoping(t *testing.T) {
	root := fixture(t)
	before := helpers.Snapshot(t, root)

	_, err := newPipeline(t, root, nil).Rebuild(context.Background())
	require.NoError(t, err)
	after := helpers.Snapshot(t, root)

	// games without children and directories without a core document are untouched
	assert.Equal(t, before["Beta/core.html"], after["Beta/core.html"])
	assert.Equal(t, before["Gamma/Settings/orphan.html"], after["Gamma/Settings/orphan.html"])
	// a core document without any anchor is left alone
	assert.Equal(t, before["Delta/core.html"], after["Delta/core.html"])
	// an item without an article tag gets no back-link
	assert.Equal(t, before["Delta/Expansions/extra.html"], after["Delta/Expansions/extra.html"])

	index := after["index.html"]
	assert.NotContains(t, index, "Gamma")
	assert.NotContains(t, index, "harbor.html")
	assert.Contains(t, index, `<a href="Alpha/Expansions/untitled.html">untitled</a>`)
	assert.Less(t, strings.Index(index, "Alpha/core.html"), strings.Index(index, "Beta/core.html"))
	assert.Less(t, strings.Index(index, "Beta/core.html"), strings.Index(index, "Delta/core.html"))

	core := after["Alpha/core.html"]
	assert.Less(t, strings.Index(core, `<span class="settings-label">Settings</span>`),
		strings.Index(core, `<span class="settings-label">Expansions</span>`))
	assert.Less(t, strings.Index(core, `class="settings-links"`), strings.Index(core, `class="ornament"`))
	assert.Contains(t, core, "<p>Rules.</p>")
}

func TestRebuild_ReportsSkips(t *testing.T) {
	root := fixture(t)
	rec := &events.Recorder{}

	_, err := newPipeline(t, root, rec).Rebuild(context.Background())
	require.NoError(t, err)

	reasons := map[string]string{}
	for _, e := range rec.OfKind(events.CoreSkipped) {
		reasons[e.Game] = e.Reason
	}
	assert.Equal(t, map[string]string{
		"Beta":  events.ReasonNoChildren,
		"Delta": events.ReasonMissingAnchor,
	}, reasons)

	skipped := rec.OfKind(events.BackLinkSkipped)
	require.Len(t, skipped, 1)
	assert.Equal(t, "Delta/Expansions/extra.html", skipped[0].Path)

	scan := rec.OfKind(events.ScanComplete)
	require.Len(t, scan, 1)
	assert.Equal(t, 3, scan[0].Count)

	runID := rec.Events[0].RunID
	require.NotEmpty(t, runID)
	for _, e := range rec.Events {
		assert.Equal(t, runID, e.RunID)
	}
}

func TestRebuild_RemovesPriorRunResidue(t *testing.T) {
	root := t.TempDir()
	stale := "<div class=\"settings-links\">\n    <a href=\"Expansions/old.html\">Old</a>\n  </div>\n\n  "
	helpers.WriteTree(t, root, map[string]string{
		"Alpha/core.html": "<article class=\"manuscript\">\n  <h1>Alpha</h1>\n\n  " +
			stale + stale + "<div class=\"ornament\">❧</div>\n</article>\n",
		"Alpha/Expansions/wild.html": manuscript(`<a class="back-link" href="../old.html">Old</a>` +
			"\n  <h1>Wild West</h1>\n  " + `<a class="back-link" href="../core.html">Back</a>`),
	})

	_, err := newPipeline(t, root, nil).Rebuild(context.Background())
	require.NoError(t, err)

	helpers.NewFileAssertions(t, root).
		AssertOccurrences("Alpha/core.html", `class="settings-links"`, 1).
		AssertFileNotContains("Alpha/core.html", "old.html").
		AssertOccurrences("Alpha/Expansions/wild.html", `class="back-link"`, 1).
		AssertFileNotContains("Alpha/Expansions/wild.html", "old.html")
}

func TestRebuild_CanceledContext(t *testing.T) {
	root := fixture(t)
	before := helpers.Snapshot(t, root)
	rec := &events.Recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipeline(t, root, rec).Rebuild(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, helpers.Snapshot(t, root))
	assert.Len(t, rec.OfKind(events.Failed), 1)
}

func TestRebuild_MissingRootFails(t *testing.T) {
	_, err := newPipeline(t, filepath.Join(t.TempDir(), "missing"), nil).Rebuild(context.Background())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestDiscover_WritesNothing(t *testing.T) {
	root := fixture(t)
	before := helpers.Snapshot(t, root)

	games, err := newPipeline(t, root, nil).Discover()
	require.NoError(t, err)
	assert.Len(t, games, 3)
	assert.Equal(t, before, helpers.Snapshot(t, root))
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Content.Order = config.OrderName
	opts := FromConfig("/srv/games", cfg)
	assert.Equal(t, "/srv/games", opts.Root)
	assert.Equal(t, "core.html", opts.Content.CoreFile)
	assert.Equal(t, "index.html", opts.IndexFile)
	assert.NotNil(t, opts.Content.Order)
	assert.Equal(t, "← Back to Core Rules", opts.BackLinkLabel)
}
