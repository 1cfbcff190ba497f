package export

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"datacloud/domain/catalog"
	"datacloud/visualization/diagram"
	"datacloud/visualization/layout"
)

func renderedDiagram(t *testing.T, width, height float64) *diagram.Diagram {
	t.Helper()

	cfg := layout.DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	d := diagram.New(cfg, zap.NewNop())

	snap := &catalog.Snapshot{
		Entries: []catalog.Entry{
			{ID: "a", Title: "Primary Care Records", Category: catalog.CategoryClinical, URL: "https://example.org/a"},
			{ID: "b", Title: "Hospital Episodes", Category: catalog.CategoryClinical},
			{ID: "c", Title: "Claims Extract", Category: catalog.CategoryAdministrative},
		},
		Links: []catalog.Link{
			{Source: "b", Target: "a"},
			{Source: "c", Target: "a"},
		},
	}
	require.NoError(t, d.SetSnapshot(snap))
	_, err := d.Render()
	require.NoError(t, err)
	return d
}

func TestSVGExport(t *testing.T) {
	e := New(renderedDiagram(t, 1200, 800), zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, e.SVG(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, `xmlns="http://www.w3.org/2000/svg"`)
	assert.Contains(t, out, ".link {", "stylesheet must be inlined")
	assert.Contains(t, out, ".link.highlighted {")
	assert.Contains(t, out, `class="link"`)
	assert.Contains(t, out, `class="node"`)
	assert.Contains(t, out, catalog.CategoryClinical.Color())
	assert.Contains(t, out, "Primary Care Records", "full title must appear for tooltips")
}

func TestSVGExportMarksHighlights(t *testing.T) {
	d := renderedDiagram(t, 1200, 800)
	_, err := d.Highlight("a")
	require.NoError(t, err)

	e := New(d, zap.NewNop())
	var buf bytes.Buffer
	require.NoError(t, e.SVG(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, `class="link highlighted"`)
	assert.Contains(t, out, `class="node highlighted"`)
}

func TestPNGExport(t *testing.T) {
	e := New(renderedDiagram(t, 640, 480), zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, e.PNG(context.Background(), &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestPDFExport(t *testing.T) {
	e := New(renderedDiagram(t, 1200, 800), zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, e.PDF(context.Background(), &buf))

	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"), "output must be a PDF document")
	assert.Greater(t, buf.Len(), 500)
}

func TestPDFExportPortrait(t *testing.T) {
	e := New(renderedDiagram(t, 600, 900), zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, e.PDF(context.Background(), &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}

func TestExportCanceledContext(t *testing.T) {
	e := New(renderedDiagram(t, 1200, 800), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	assert.Error(t, e.SVG(ctx, &buf))
	assert.Error(t, e.PNG(ctx, &buf))
	assert.Error(t, e.PDF(ctx, &buf))
	assert.Zero(t, buf.Len())
}

func TestExportUnrenderedDiagram(t *testing.T) {
	d := diagram.New(layout.DefaultConfig(), zap.NewNop())
	e := New(d, zap.NewNop())

	var buf bytes.Buffer
	assert.Error(t, e.SVG(context.Background(), &buf))
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "static-graph.svg", FilenameSVG)
	assert.Equal(t, "static-graph.png", FilenamePNG)
	assert.Equal(t, "static-graph.pdf", FilenamePDF)
}
