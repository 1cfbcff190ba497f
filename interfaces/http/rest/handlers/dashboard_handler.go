package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"datacloud/application/queries"
	querybus "datacloud/application/queries/bus"
	"datacloud/pkg/common"
)

// DashboardHandler serves aggregate catalog statistics.
type DashboardHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewDashboardHandler creates the handler.
func NewDashboardHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{queryBus: queryBus, logger: logger}
}

// GetDashboard handles GET /dashboard.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetDashboardQuery{})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
