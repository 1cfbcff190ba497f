package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"datacloud/application/queries"
	querybus "datacloud/application/queries/bus"
	"datacloud/pkg/common"
)

// SearchHandler serves catalog search over titles, descriptions, and tags.
type SearchHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewSearchHandler creates the handler.
func NewSearchHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{queryBus: queryBus, logger: logger}
}

// SearchDatasets handles GET /datasets/search.
func (h *SearchHandler) SearchDatasets(w http.ResponseWriter, r *http.Request) {
	q := queries.SearchEntriesQuery{
		Term:     r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			q.Offset = n
		}
	}

	if err := q.Validate(); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	result, err := h.queryBus.Ask(r.Context(), q)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
