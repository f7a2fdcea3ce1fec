package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/twinsuns/league-hq/internal/api/response"
	"github.com/twinsuns/league-hq/internal/cards/catalog"
	"github.com/twinsuns/league-hq/internal/pool"
	"github.com/twinsuns/league-hq/internal/storage/repository"
)

// PoolHandler serves card-pool ledger reads and writes.
type PoolHandler struct {
	repo  repository.PoolRepository
	store *catalog.Store
}

// NewPoolHandler creates a new PoolHandler.
func NewPoolHandler(repo repository.PoolRepository, store *catalog.Store) *PoolHandler {
	return &PoolHandler{repo: repo, store: store}
}

// UpsertEntry sets the owned quantity for one card. The card id is resolved
// to its canonical form before storage so later spellings of the same card
// land on the same row.
func (h *PoolHandler) UpsertEntry(w http.ResponseWriter, r *http.Request) {
	var entry pool.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if entry.OwnerID == "" || entry.CardID == "" {
		response.BadRequest(w, errors.New("owner_id and card_id are required"))
		return
	}

	snap := h.store.Snapshot()
	if id := snap.Index.Resolve(entry.CardID); id != "" {
		entry.CardID = id
	}
	entry.Quantity = pool.ClampQuantity(entry.Quantity)

	if err := h.repo.UpsertQuantity(r.Context(), entry.OwnerID, entry.SeasonID, entry.CardID, entry.Quantity); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, entry)
}

// GetPool returns the aggregated per-card quantities for an owner.
func (h *PoolHandler) GetPool(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	if ownerID == "" {
		response.BadRequest(w, errors.New("owner ID is required"))
		return
	}
	seasonID := r.URL.Query().Get("season")

	entries, err := h.repo.ListEntries(r.Context(), ownerID, seasonID)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	snap := h.store.Snapshot()
	quantities := pool.Aggregate(entries, snap.Index.Resolve, pool.Scope{OwnerFilter: ownerID})

	response.Success(w, quantities)
}

// GetMergedPool returns per-card quantities summed across all owners.
func (h *PoolHandler) GetMergedPool(w http.ResponseWriter, r *http.Request) {
	seasonID := r.URL.Query().Get("season")

	entries, err := h.repo.ListEntries(r.Context(), "", seasonID)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	snap := h.store.Snapshot()
	quantities := pool.Aggregate(entries, snap.Index.Resolve, pool.Scope{MergeOwners: true})

	response.Success(w, quantities)
}
