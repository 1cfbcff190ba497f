// Package handlers implements the REST endpoints of the catalog API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"datacloud/application/commands"
	"datacloud/application/commands/bus"
	"datacloud/pkg/common"
	"datacloud/pkg/utils"
)

// DatasetHandler handles dataset CRUD requests.
type DatasetHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewDatasetHandler creates the handler.
func NewDatasetHandler(commandBus *bus.CommandBus, logger *zap.Logger) *DatasetHandler {
	return &DatasetHandler{commandBus: commandBus, logger: logger}
}

// CreateDatasetRequest is the request body for adding a dataset.
type CreateDatasetRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Category    string   `json:"category" validate:"required"`
	URL         string   `json:"url,omitempty" validate:"omitempty,max=2000"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
}

// CreateDataset handles POST /datasets.
func (h *DatasetHandler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	var req CreateDatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	cmd := &commands.AddEntryCommand{
		Title:       req.Title,
		Category:    req.Category,
		URL:         req.URL,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": cmd.EntryID})
}

// DeleteDataset handles DELETE /datasets/{datasetID}.
func (h *DatasetHandler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.DeleteEntryCommand{ID: chi.URLParam(r, "datasetID")}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.ID})
}

// CreateLinkRequest is the request body for linking two datasets.
type CreateLinkRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// CreateLink handles POST /links.
func (h *DatasetHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	cmd := &commands.LinkEntriesCommand{SourceID: req.Source, TargetID: req.Target}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, req)
}
