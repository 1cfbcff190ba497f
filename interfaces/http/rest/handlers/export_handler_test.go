package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"datacloud/domain/catalog"
	"datacloud/infrastructure/persistence/memory"
	"datacloud/pkg/common"
	"datacloud/visualization/diagram"
	"datacloud/visualization/export"
	"datacloud/visualization/layout"
)

func TestExportHandlerServesAttachment(t *testing.T) {
	logger := zap.NewNop()
	repo := memory.NewEntryRepository()
	entry, err := catalog.NewEntry("Primary Care Records", catalog.CategoryClinical, "https://example.org", "", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), entry))

	d := diagram.New(layout.DefaultConfig(), logger)
	h := NewExportHandler(repo, d, export.New(d, logger), logger)

	rec := httptest.NewRecorder()
	h.ExportSVG(rec, httptest.NewRequest(http.MethodGet, "/graph/export/svg", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), export.FilenameSVG)
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestExportHandlerSurfacesRenderFailure(t *testing.T) {
	logger := zap.NewNop()
	repo := memory.NewEntryRepository()

	// The exporter watches a diagram that never receives a snapshot, so
	// encoding fails after the handler's own diagram rendered fine.
	served := diagram.New(layout.DefaultConfig(), logger)
	orphan := diagram.New(layout.DefaultConfig(), logger)
	h := NewExportHandler(repo, served, export.New(orphan, logger), logger)

	for _, tc := range []struct {
		name  string
		serve http.HandlerFunc
	}{
		{"svg", h.ExportSVG},
		{"png", h.ExportPNG},
		{"pdf", h.ExportPDF},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.serve(rec, httptest.NewRequest(http.MethodGet, "/graph/export/"+tc.name, nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Empty(t, rec.Header().Get("Content-Disposition"), "no attachment headers on failure")

			var resp common.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
		})
	}
}
