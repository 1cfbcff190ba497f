// Package export turns a rendered diagram into downloadable SVG, PNG,
// and PDF artifacts. All three operate on an immutable frame of the
// diagram; nothing here talks to the database.
package export

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	pkgerrors "datacloud/pkg/errors"
	"datacloud/visualization/diagram"
)

// Download filenames for the three artifact formats.
const (
	FilenameSVG = "static-graph.svg"
	FilenamePNG = "static-graph.png"
	FilenamePDF = "static-graph.pdf"
)

// Stylesheet inlined into SVG and used as the visual reference for the
// raster and PDF drawings. The .highlighted overrides ship even when no
// element is highlighted so a saved document can restyle later.
const stylesheet = `.link { stroke: #9ecae1; stroke-width: 1.5px; stroke-opacity: 0.7; }
.link.highlighted { stroke: #ff7f0e; stroke-width: 3px; stroke-opacity: 1; }
.node { stroke: #ffffff; stroke-width: 1.5px; }
.node.highlighted { stroke: #333333; stroke-width: 3px; }
.label { font: 11px sans-serif; fill: #333333; text-anchor: middle; pointer-events: none; }
.legend { font: 12px sans-serif; fill: #333333; }`

// Drawing colors shared by the raster and PDF pipelines, matching the
// stylesheet above.
const (
	linkColor            = "#9ecae1"
	linkHighlightColor   = "#ff7f0e"
	nodeStrokeColor      = "#ffffff"
	nodeHighlightStroke  = "#333333"
	labelColor           = "#333333"
	backgroundColor      = "#ffffff"
	linkWidth            = 1.5
	linkHighlightedWidth = 3.0
)

// Exporter serializes exports of a single diagram: a second export
// issued while one is running waits its turn instead of racing.
type Exporter struct {
	mu      sync.Mutex
	diagram *diagram.Diagram
	logger  *zap.Logger
}

// New creates an exporter bound to a diagram.
func New(d *diagram.Diagram, logger *zap.Logger) *Exporter {
	return &Exporter{diagram: d, logger: logger}
}

// SVG writes a standalone SVG document of the rendered diagram.
func (e *Exporter) SVG(ctx context.Context, w io.Writer) error {
	return e.run(ctx, "svg", w, writeSVG)
}

// PNG writes a raster image at the diagram's pixel dimensions.
func (e *Exporter) PNG(ctx context.Context, w io.Writer) error {
	return e.run(ctx, "png", w, writePNG)
}

// PDF writes a single page sized exactly to the diagram, orientation
// derived from its aspect ratio.
func (e *Exporter) PDF(ctx context.Context, w io.Writer) error {
	return e.run(ctx, "pdf", w, writePDF)
}

func (e *Exporter) run(ctx context.Context, format string, w io.Writer, write func(*diagram.Frame, io.Writer) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return pkgerrors.NewExportError(format, err)
	}

	frame, err := e.diagram.Frame()
	if err != nil {
		return fmt.Errorf("capturing frame for %s export: %w", format, err)
	}

	if err := write(frame, w); err != nil {
		e.logger.Error("diagram export failed",
			zap.String("format", format),
			zap.Error(err),
		)
		return pkgerrors.NewExportError(format, err)
	}

	e.logger.Info("diagram exported",
		zap.String("format", format),
		zap.Int("nodes", len(frame.Nodes)),
		zap.Int("links", len(frame.Links)),
	)
	return nil
}
