package graphview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datacloud/domain/catalog"
)

func snapshot(entries []catalog.Entry, links []catalog.Link) *catalog.Snapshot {
	return &catalog.Snapshot{Entries: entries, Links: links}
}

func entry(id, title string) catalog.Entry {
	return catalog.Entry{ID: id, Title: title, Category: catalog.CategoryClinical}
}

func TestBuildDropsIsolatedNodes(t *testing.T) {
	snap := snapshot(
		[]catalog.Entry{entry("a", "A"), entry("b", "B"), entry("c", "C")},
		[]catalog.Link{{Source: "a", Target: "b"}},
	)

	view, err := Build(snap)
	require.NoError(t, err)

	assert.Len(t, view.Nodes, 2)
	assert.Len(t, view.Links, 1)
	assert.Equal(t, 1, view.DroppedNodes)
	assert.Nil(t, view.Node("c"))
}

func TestBuildDropsDanglingLinks(t *testing.T) {
	snap := snapshot(
		[]catalog.Entry{entry("a", "A"), entry("b", "B")},
		[]catalog.Link{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "ghost"},
			{Source: "ghost", Target: "b"},
		},
	)

	view, err := Build(snap)
	require.NoError(t, err)

	assert.Len(t, view.Links, 1)
	assert.Equal(t, 2, view.DroppedLinks)
}

func TestBuildDeduplicatesLinks(t *testing.T) {
	snap := snapshot(
		[]catalog.Entry{entry("a", "A"), entry("b", "B")},
		[]catalog.Link{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "b"},
		},
	)

	view, err := Build(snap)
	require.NoError(t, err)

	assert.Len(t, view.Links, 1)
	assert.Equal(t, 1, view.DroppedLinks)
}

func TestBuildInDegree(t *testing.T) {
	snap := snapshot(
		[]catalog.Entry{entry("a", "A"), entry("b", "B"), entry("c", "C")},
		[]catalog.Link{
			{Source: "a", Target: "b"},
			{Source: "c", Target: "b"},
		},
	)

	view, err := Build(snap)
	require.NoError(t, err)

	assert.Equal(t, 0, view.Node("a").InDegree)
	assert.Equal(t, 2, view.Node("b").InDegree)
	assert.Equal(t, 2, view.MaxInDegree())
}

func TestNeighborsAreUndirected(t *testing.T) {
	snap := snapshot(
		[]catalog.Entry{entry("a", "A"), entry("b", "B"), entry("c", "C")},
		[]catalog.Link{
			{Source: "a", Target: "b"},
			{Source: "c", Target: "a"},
		},
	)

	view, err := Build(snap)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c"}, view.Neighbors("a"))
	assert.Equal(t, []string{"a"}, view.Neighbors("b"))
	assert.Nil(t, view.Neighbors("missing"))
}

func TestIncidentLinks(t *testing.T) {
	snap := snapshot(
		[]catalog.Entry{entry("a", "A"), entry("b", "B"), entry("c", "C")},
		[]catalog.Link{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
			{Source: "c", Target: "a"},
		},
	)

	view, err := Build(snap)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, view.IncidentLinks("b"))
}

func TestDensity(t *testing.T) {
	snap := snapshot(
		[]catalog.Entry{entry("a", "A"), entry("b", "B"), entry("c", "C")},
		[]catalog.Link{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
		},
	)

	view, err := Build(snap)
	require.NoError(t, err)

	assert.InDelta(t, 2.0/3.0, view.Density(), 1e-9)

	empty, err := Build(snapshot([]catalog.Entry{entry("a", "A")}, nil))
	require.NoError(t, err)
	assert.Zero(t, empty.Density())
}

func TestBuildIsDeterministic(t *testing.T) {
	snap := snapshot(
		[]catalog.Entry{entry("a", "A"), entry("b", "B"), entry("c", "C"), entry("d", "D")},
		[]catalog.Link{
			{Source: "a", Target: "b"},
			{Source: "c", Target: "d"},
			{Source: "a", Target: "d"},
		},
	)

	first, err := Build(snap)
	require.NoError(t, err)
	second, err := Build(snap)
	require.NoError(t, err)

	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Links, second.Links)
}
