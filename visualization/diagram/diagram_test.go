package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"datacloud/domain/catalog"
	"datacloud/visualization/layout"
)

func testDiagram(t *testing.T) *Diagram {
	t.Helper()
	return New(layout.DefaultConfig(), zap.NewNop())
}

// a <- b, a <- c, b <- c: a has in-degree 2, b has 1, c has 0.
func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Entries: []catalog.Entry{
			{ID: "a", Title: "Primary Care Records", Category: catalog.CategoryClinical, URL: "https://example.org/a"},
			{ID: "b", Title: "Hospital Episodes", Category: catalog.CategoryClinical, URL: "#"},
			{ID: "c", Title: "Claims Extract", Category: catalog.CategoryAdministrative},
		},
		Links: []catalog.Link{
			{Source: "b", Target: "a"},
			{Source: "c", Target: "a"},
			{Source: "c", Target: "b"},
		},
	}
}

func TestRenderOnce(t *testing.T) {
	d := testDiagram(t)
	require.NoError(t, d.SetSnapshot(testSnapshot()))

	computed, err := d.Render()
	require.NoError(t, err)
	assert.True(t, computed)

	computed, err = d.Render()
	require.NoError(t, err)
	assert.False(t, computed, "second render of the same snapshot must be a no-op")
}

func TestRenderWithoutSnapshotFails(t *testing.T) {
	d := testDiagram(t)
	_, err := d.Render()
	assert.Error(t, err)
}

func TestSetSnapshotResetsLatchOnlyOnChange(t *testing.T) {
	d := testDiagram(t)
	require.NoError(t, d.SetSnapshot(testSnapshot()))
	_, err := d.Render()
	require.NoError(t, err)

	// Identical snapshot: latch stays set.
	require.NoError(t, d.SetSnapshot(testSnapshot()))
	computed, err := d.Render()
	require.NoError(t, err)
	assert.False(t, computed)

	// Changed snapshot: latch resets.
	changed := testSnapshot()
	changed.Links = changed.Links[:2]
	require.NoError(t, d.SetSnapshot(changed))
	computed, err = d.Render()
	require.NoError(t, err)
	assert.True(t, computed)
}

func TestRadiusScalesWithInDegree(t *testing.T) {
	d := testDiagram(t)
	require.NoError(t, d.SetSnapshot(testSnapshot()))

	assert.Equal(t, 40.0, d.Radius("a"))
	assert.Equal(t, 30.0, d.Radius("b"))
	assert.Equal(t, 20.0, d.Radius("c"))
	assert.Equal(t, 20.0, d.Radius("missing"))
}

func TestRadiusBeforeSnapshot(t *testing.T) {
	d := testDiagram(t)
	assert.Equal(t, 20.0, d.Radius("a"))
}

func TestRadiusWithoutIncomingLinks(t *testing.T) {
	d := testDiagram(t)
	snap := testSnapshot()
	// Two nodes linked one way; strip in-degree by making a ring of size 2
	// impossible: a -> b only, then query b's source a.
	snap.Links = []catalog.Link{{Source: "a", Target: "b"}}
	require.NoError(t, d.SetSnapshot(snap))

	// a has in-degree 0, b carries the maximum.
	assert.Equal(t, 20.0, d.Radius("a"))
	assert.Equal(t, 40.0, d.Radius("b"))
}

func TestLabelTruncation(t *testing.T) {
	// limit = int(40 * 0.22) = 8 runes
	assert.Equal(t, "Short", Label("Short", 40))
	assert.Equal(t, "A Longer…", Label("A Longer Dataset Title", 40))

	// limit = int(20 * 0.22) = 4 runes
	assert.Equal(t, "Häma…", Label("Hämatologie Register", 20))
}

func TestLegendListsPresentCategoriesInOrder(t *testing.T) {
	d := testDiagram(t)
	require.NoError(t, d.SetSnapshot(testSnapshot()))

	legend := d.Legend()
	require.Len(t, legend, 2)
	assert.Equal(t, string(catalog.CategoryClinical), legend[0].Label)
	assert.Equal(t, catalog.CategoryClinical.Color(), legend[0].Color)
	assert.Equal(t, string(catalog.CategoryAdministrative), legend[1].Label)
}

func TestHighlight(t *testing.T) {
	d := testDiagram(t)
	require.NoError(t, d.SetSnapshot(testSnapshot()))
	_, err := d.Render()
	require.NoError(t, err)

	set, err := d.Highlight("a")
	require.NoError(t, err)

	assert.Equal(t, "a", set.Node)
	assert.ElementsMatch(t, []string{"b", "c"}, set.Neighbors)
	assert.Equal(t, []int{0, 1}, set.Links)

	frame, err := d.Frame()
	require.NoError(t, err)
	highlightedNodes := 0
	for _, n := range frame.Nodes {
		if n.Highlighted {
			highlightedNodes++
		}
	}
	highlightedLinks := 0
	for _, l := range frame.Links {
		if l.Highlighted {
			highlightedLinks++
		}
	}
	assert.Equal(t, 3, highlightedNodes)
	assert.Equal(t, 2, highlightedLinks)
}

func TestHighlightUnknownNode(t *testing.T) {
	d := testDiagram(t)
	require.NoError(t, d.SetSnapshot(testSnapshot()))

	_, err := d.Highlight("ghost")
	assert.Error(t, err)
}

func TestClearHighlight(t *testing.T) {
	d := testDiagram(t)
	require.NoError(t, d.SetSnapshot(testSnapshot()))
	_, err := d.Render()
	require.NoError(t, err)

	_, err = d.Highlight("a")
	require.NoError(t, err)
	d.ClearHighlight()

	frame, err := d.Frame()
	require.NoError(t, err)
	for _, n := range frame.Nodes {
		assert.False(t, n.Highlighted)
	}
	for _, l := range frame.Links {
		assert.False(t, l.Highlighted)
	}
}

func TestResolveNavigation(t *testing.T) {
	d := testDiagram(t)
	require.NoError(t, d.SetSnapshot(testSnapshot()))

	url, ok := d.ResolveNavigation("a")
	assert.True(t, ok)
	assert.Equal(t, "https://example.org/a", url)

	_, ok = d.ResolveNavigation("b") // "#" placeholder
	assert.False(t, ok)

	_, ok = d.ResolveNavigation("c") // empty URL
	assert.False(t, ok)

	_, ok = d.ResolveNavigation("ghost")
	assert.False(t, ok)
}

func TestFrameRequiresRender(t *testing.T) {
	d := testDiagram(t)
	require.NoError(t, d.SetSnapshot(testSnapshot()))

	_, err := d.Frame()
	assert.Error(t, err)

	_, err = d.Render()
	require.NoError(t, err)

	frame, err := d.Frame()
	require.NoError(t, err)
	assert.Equal(t, 1200, frame.Width)
	assert.Equal(t, 800, frame.Height)
	assert.Len(t, frame.Nodes, 3)
	assert.Len(t, frame.Links, 3)
	for _, n := range frame.Nodes {
		assert.GreaterOrEqual(t, n.X, 30.0)
		assert.LessOrEqual(t, n.X, 1170.0)
		assert.GreaterOrEqual(t, n.Y, 30.0)
		assert.LessOrEqual(t, n.Y, 770.0)
	}
}
