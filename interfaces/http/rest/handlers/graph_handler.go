package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"datacloud/application/ports"
	"datacloud/application/queries"
	querybus "datacloud/application/queries/bus"
	"datacloud/pkg/common"
	"datacloud/visualization/diagram"
)

// GraphHandler serves the graph-cloud data and its interaction
// endpoints: hover highlighting and click navigation.
type GraphHandler struct {
	queryBus *querybus.QueryBus
	repo     ports.EntryRepository
	diagram  *diagram.Diagram
	logger   *zap.Logger
}

// NewGraphHandler creates the handler.
func NewGraphHandler(queryBus *querybus.QueryBus, repo ports.EntryRepository, d *diagram.Diagram, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{queryBus: queryBus, repo: repo, diagram: d, logger: logger}
}

// GetGraphData handles GET /graph-data.
func (h *GraphHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetGraphDataQuery{})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// syncDiagram feeds the latest snapshot to the shared diagram. The
// diagram's own fingerprint check makes this cheap when nothing changed.
func (h *GraphHandler) syncDiagram(r *http.Request) error {
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

// HighlightNode handles GET /graph/nodes/{nodeID}/neighbors: the hover
// interaction. It marks the node, its incident links, and its direct
// neighbors, and returns the highlighted set.
func (h *GraphHandler) HighlightNode(w http.ResponseWriter, r *http.Request) {
	if err := h.syncDiagram(r); err != nil {
		common.RespondAppError(w, err)
		return
	}

	set, err := h.diagram.Highlight(chi.URLParam(r, "nodeID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, set)
}

// ClearHighlight handles DELETE /graph/highlight: the mouse-leave
// interaction.
func (h *GraphHandler) ClearHighlight(w http.ResponseWriter, r *http.Request) {
	h.diagram.ClearHighlight()
	w.WriteHeader(http.StatusNoContent)
}

// OpenNode handles GET /graph/nodes/{nodeID}/open: the click
// interaction. Nodes with an http-prefixed URL redirect; anything else
// logs a warning and navigates nowhere.
func (h *GraphHandler) OpenNode(w http.ResponseWriter, r *http.Request) {
	if err := h.syncDiagram(r); err != nil {
		common.RespondAppError(w, err)
		return
	}

	url, ok := h.diagram.ResolveNavigation(chi.URLParam(r, "nodeID"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}
