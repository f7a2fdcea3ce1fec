// Package handlers implements the HTTP handlers for the REST API.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/twinsuns/league-hq/internal/api/response"
	"github.com/twinsuns/league-hq/internal/cards"
	"github.com/twinsuns/league-hq/internal/cards/catalog"
)

// CardHandler serves catalog lookups and identifier resolution.
type CardHandler struct {
	store *catalog.Store
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(store *catalog.Store) *CardHandler {
	return &CardHandler{store: store}
}

// SearchCards returns catalog records whose name contains the query string.
func (h *CardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	snap := h.store.Snapshot()
	var matches []cards.CardRecord
	for _, card := range snap.Catalog {
		if query != "" && !strings.Contains(strings.ToLower(card.Name), query) {
			continue
		}
		matches = append(matches, card)
		if len(matches) >= limit {
			break
		}
	}

	response.Success(w, matches)
}

// GetCard resolves any identifier spelling and returns the card record.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	if cardID == "" {
		response.BadRequest(w, errors.New("card ID is required"))
		return
	}

	card := h.store.Snapshot().ResolveCard(cardID)
	if card == nil {
		response.NotFound(w, errors.New("card not found"))
		return
	}

	response.Success(w, card)
}

// ResolutionResult reports how an identifier resolved against the catalog.
type ResolutionResult struct {
	Input       string `json:"input"`
	CardID      string `json:"card_id,omitempty"`
	DisplayName string `json:"display_name"`
	Resolved    bool   `json:"resolved"`
}

// ResolveCard reports the canonical id and display name for an identifier
// without treating a miss as an error.
func (h *CardHandler) ResolveCard(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		response.BadRequest(w, errors.New("id query parameter is required"))
		return
	}

	snap := h.store.Snapshot()
	result := ResolutionResult{
		Input:       raw,
		CardID:      snap.Index.Resolve(raw),
		DisplayName: snap.ResolveDisplayName(raw),
	}
	result.Resolved = result.CardID != ""

	response.Success(w, result)
}

// ReloadCatalog forces a re-read of the catalog file.
func (h *CardHandler) ReloadCatalog(w http.ResponseWriter, _ *http.Request) {
	if err := h.store.Reload(); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, map[string]int{"cards": len(h.store.Snapshot().Catalog)})
}
