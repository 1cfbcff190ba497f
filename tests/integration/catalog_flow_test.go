package integration

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"datacloud/application/commands"
	"datacloud/application/queries"
	"datacloud/domain/catalog"
	"datacloud/infrastructure/di"
	"datacloud/infrastructure/persistence/memory"
	"datacloud/visualization/diagram"
	"datacloud/visualization/export"
	"datacloud/visualization/layout"
)

// TestCatalogFlow walks the whole pipeline: register datasets through
// the command bus, link them, read the graph back through the query
// bus, render the cloud, and export it.
func TestCatalogFlow(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	repo := memory.NewEntryRepository()
	commandBus, err := di.ProvideCommandBus(repo, logger)
	require.NoError(t, err)
	queryBus, err := di.ProvideQueryBus(repo, logger)
	require.NoError(t, err)

	// Register three datasets.
	datasets := []struct {
		title    string
		category catalog.Category
		url      string
	}{
		{"Primary Care Records", catalog.CategoryClinical, "https://example.org/pcr"},
		{"Whole Genome Cohort", catalog.CategoryOmics, "https://example.org/wgc"},
		{"Claims Extract", catalog.CategoryAdministrative, ""},
	}
	ids := make([]string, 0, len(datasets))
	for _, d := range datasets {
		cmd := &commands.AddEntryCommand{
			Title:    d.title,
			Category: string(d.category),
			URL:      d.url,
		}
		require.NoError(t, commandBus.Send(ctx, cmd))
		require.NotEmpty(t, cmd.EntryID)
		ids = append(ids, cmd.EntryID)
	}

	// Link them: genome -> care, claims -> care.
	for _, source := range ids[1:] {
		require.NoError(t, commandBus.Send(ctx, &commands.LinkEntriesCommand{
			SourceID: source,
			TargetID: ids[0],
		}))
	}

	// Linking to a missing dataset must fail.
	assert.Error(t, commandBus.Send(ctx, &commands.LinkEntriesCommand{
		SourceID: ids[0],
		TargetID: "ghost",
	}))

	// The graph payload reflects the writes.
	raw, err := queryBus.Ask(ctx, queries.GetGraphDataQuery{})
	require.NoError(t, err)
	graphData := raw.(*queries.GetGraphDataResult)
	assert.Equal(t, 3, graphData.Stats.NodeCount)
	assert.Equal(t, 2, graphData.Stats.LinkCount)

	// Render the cloud and export each format.
	d := diagram.New(layout.DefaultConfig(), logger)
	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, d.SetSnapshot(snap))

	computed, err := d.Render()
	require.NoError(t, err)
	require.True(t, computed)

	exporter := export.New(d, logger)

	var svg bytes.Buffer
	require.NoError(t, exporter.SVG(ctx, &svg))
	assert.Contains(t, svg.String(), "Primary Care Records")

	var pdf bytes.Buffer
	require.NoError(t, exporter.PDF(ctx, &pdf))
	assert.True(t, strings.HasPrefix(pdf.String(), "%PDF-"))

	// A delete cascades into the next render.
	require.NoError(t, commandBus.Send(ctx, &commands.DeleteEntryCommand{ID: ids[1]}))

	snap, err = repo.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, d.SetSnapshot(snap))
	computed, err = d.Render()
	require.NoError(t, err)
	assert.True(t, computed, "changed snapshot must re-render")

	raw, err = queryBus.Ask(ctx, queries.GetGraphDataQuery{})
	require.NoError(t, err)
	graphData = raw.(*queries.GetGraphDataResult)
	assert.Equal(t, 2, graphData.Stats.NodeCount)
	assert.Equal(t, 1, graphData.Stats.LinkCount)
}
