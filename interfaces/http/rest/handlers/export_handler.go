package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"datacloud/application/ports"
	"datacloud/pkg/common"
	"datacloud/visualization/diagram"
	"datacloud/visualization/export"
)

// ExportHandler serves static renders of the graph cloud in SVG, PNG,
// and PDF form.
type ExportHandler struct {
	repo     ports.EntryRepository
	diagram  *diagram.Diagram
	exporter *export.Exporter
	logger   *zap.Logger
}

// NewExportHandler creates the handler.
func NewExportHandler(repo ports.EntryRepository, d *diagram.Diagram, exporter *export.Exporter, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{repo: repo, diagram: d, exporter: exporter, logger: logger}
}

func (h *ExportHandler) prepare(r *http.Request) error {
	snap, err := h.repo.Snapshot(r.Context())
	if err != nil {
		return err
	}
	if err := h.diagram.SetSnapshot(snap); err != nil {
		return err
	}
	_, err = h.diagram.Render()
	return err
}

// serve renders the export into memory first so an encoder failure
// still reaches the client as an error response instead of a 200 with
// a truncated body.
func (h *ExportHandler) serve(w http.ResponseWriter, r *http.Request, contentType, filename string, render func(context.Context, io.Writer) error) {
	if err := h.prepare(r); err != nil {
		common.RespondAppError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := render(r.Context(), &buf); err != nil {
		h.logger.Error("export failed", zap.String("filename", filename), zap.Error(err))
		common.RespondAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("export write interrupted", zap.String("filename", filename), zap.Error(err))
	}
}

// ExportSVG handles GET /graph/export/svg.
func (h *ExportHandler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "image/svg+xml", export.FilenameSVG, h.exporter.SVG)
}

// ExportPNG handles GET /graph/export/png.
func (h *ExportHandler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "image/png", export.FilenamePNG, h.exporter.PNG)
}

// ExportPDF handles GET /graph/export/pdf.
func (h *ExportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "application/pdf", export.FilenamePDF, h.exporter.PDF)
}
