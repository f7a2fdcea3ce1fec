package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/twinsuns/league-hq/internal/api/response"
	"github.com/twinsuns/league-hq/internal/cards/catalog"
	"github.com/twinsuns/league-hq/internal/meta"
)

// MetaHandler serves field-wide meta snapshots.
type MetaHandler struct {
	service *meta.Service
	store   *catalog.Store
}

// NewMetaHandler creates a new MetaHandler.
func NewMetaHandler(service *meta.Service, store *catalog.Store) *MetaHandler {
	return &MetaHandler{service: service, store: store}
}

// GetSnapshot builds the meta snapshot for a tournament: archetype counts,
// most-played cards, and aspect and cost distributions across the field.
func (h *MetaHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if tournamentID == "" {
		response.BadRequest(w, errors.New("tournament ID is required"))
		return
	}

	snapshot, err := h.service.Snapshot(r.Context(), tournamentID, h.store.Snapshot())
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, snapshot)
}
