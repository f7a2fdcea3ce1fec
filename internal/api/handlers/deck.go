package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/twinsuns/league-hq/internal/analysis"
	"github.com/twinsuns/league-hq/internal/api/response"
	"github.com/twinsuns/league-hq/internal/cards"
	"github.com/twinsuns/league-hq/internal/cards/catalog"
	"github.com/twinsuns/league-hq/internal/charts"
	"github.com/twinsuns/league-hq/internal/deck"
	"github.com/twinsuns/league-hq/internal/deck/interchange"
	"github.com/twinsuns/league-hq/internal/pool"
	"github.com/twinsuns/league-hq/internal/storage/repository"
)

// DeckHandler serves deck persistence, import/export, reconciliation, and
// composition analysis.
type DeckHandler struct {
	decks repository.DeckRepository
	pools repository.PoolRepository
	store *catalog.Store
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(decks repository.DeckRepository, pools repository.PoolRepository, store *catalog.Store) *DeckHandler {
	return &DeckHandler{decks: decks, pools: pools, store: store}
}

// SaveDeckRequest is the body for creating or updating a deck.
type SaveDeckRequest struct {
	TournamentID string    `json:"tournament_id"`
	OwnerID      string    `json:"owner_id"`
	Deck         deck.Deck `json:"deck"`
}

// SaveDeck persists a deck, normalizing every card identifier to its
// canonical catalog form first.
func (h *DeckHandler) SaveDeck(w http.ResponseWriter, r *http.Request) {
	var req SaveDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.Deck.ID == "" || req.OwnerID == "" {
		response.BadRequest(w, errors.New("deck id and owner_id are required"))
		return
	}

	req.Deck.Heal(h.store.Snapshot())

	if err := h.decks.SaveDeck(r.Context(), req.TournamentID, req.OwnerID, &req.Deck); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Created(w, req.Deck)
}

// GetDeck loads a deck, re-normalizing its identifiers against the current
// catalog so decks saved against an older catalog self-correct.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDeck(w, r)
	if !ok {
		return
	}
	response.Success(w, d)
}

// ListDecks returns every deck registered for a tournament.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	tournamentID := r.URL.Query().Get("tournament")

	decks, err := h.decks.ListDecks(r.Context(), tournamentID)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	snap := h.store.Snapshot()
	for _, d := range decks {
		d.Heal(snap)
	}

	response.Success(w, decks)
}

// DeleteDeck removes a deck and its card rows.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	if deckID == "" {
		response.BadRequest(w, errors.New("deck ID is required"))
		return
	}

	if err := h.decks.DeleteDeck(r.Context(), deckID); err != nil {
		response.InternalError(w, err)
		return
	}

	response.NoContent(w)
}

// ImportDeck parses an interchange-format decklist. A payload whose leader
// or base cannot be resolved is rejected whole; unknown list entries are
// skipped and reported as warnings.
func (h *DeckHandler) ImportDeck(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	result, err := interchange.Import(payload, h.store.Snapshot())
	if err != nil {
		response.UnprocessableEntity(w, err)
		return
	}

	response.SuccessWithWarnings(w, result.Deck, result.Warnings)
}

// ExportDeck renders a stored deck in the interchange format.
func (h *DeckHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDeck(w, r)
	if !ok {
		return
	}

	payload, err := interchange.Export(d, r.URL.Query().Get("author"))
	if err != nil {
		response.InternalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// ReconcileRequest selects the pool a deck is checked against.
type ReconcileRequest struct {
	OwnerID     string `json:"owner_id"`
	SeasonID    string `json:"season_id,omitempty"`
	MergeOwners bool   `json:"merge_owners,omitempty"`
}

// ReconcileResult is the outcome of a deck-versus-pool check.
type ReconcileResult struct {
	DeckID     string           `json:"deck_id"`
	Legal      bool             `json:"legal"`
	Violations []deck.Violation `json:"violations"`
}

// ReconcileDeck checks a deck's card usage against an owner's pool (or the
// merged pool) and reports missing and excess cards. The check never
// modifies the deck or the pool.
func (h *DeckHandler) ReconcileDeck(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.OwnerID == "" && !req.MergeOwners {
		response.BadRequest(w, errors.New("owner_id is required unless merge_owners is set"))
		return
	}

	d, ok := h.loadDeck(w, r)
	if !ok {
		return
	}

	entries, err := h.pools.ListEntries(r.Context(), req.OwnerID, req.SeasonID)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	snap := h.store.Snapshot()
	quantities := pool.Aggregate(entries, snap.Index.Resolve, pool.Scope{
		OwnerFilter: req.OwnerID,
		MergeOwners: req.MergeOwners,
	})

	violations := deck.Reconcile(d.Mainboard, d.Sideboard, func(cardID string) int {
		return pool.Quantity(quantities, cardID)
	})

	response.Success(w, ReconcileResult{
		DeckID:     d.ID,
		Legal:      len(violations) == 0,
		Violations: violations,
	})
}

// AnalyzeDeck computes composition distributions for a deck's mainboard,
// with the aspect-fit split driven by the leader and base aspects.
func (h *DeckHandler) AnalyzeDeck(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDeck(w, r)
	if !ok {
		return
	}

	response.Success(w, h.deckMetrics(d))
}

// DeckCharts renders the deck's composition dashboard as an HTML page.
func (h *DeckHandler) DeckCharts(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDeck(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.WriteDashboard(h.deckMetrics(d), d.Name, w); err != nil {
		response.InternalError(w, err)
	}
}

func (h *DeckHandler) deckMetrics(d *deck.Deck) *analysis.Metrics {
	snap := h.store.Snapshot()

	var entries []analysis.Entry
	for cardID, qty := range d.Mainboard {
		entries = append(entries, analysis.Entry{
			Card:     snap.ResolveCard(cardID),
			Quantity: qty,
		})
	}

	return analysis.Analyze(entries, allowedAspects(snap, d.Leader, d.Base))
}

// allowedAspects collects the aspect icons provided by a deck's leader and
// base. A nil return means no aspect-fit split can be computed.
func allowedAspects(snap *cards.Snapshot, leader, base string) map[string]bool {
	allowed := map[string]bool{}
	for _, id := range []string{leader, base} {
		card := snap.ResolveCard(id)
		if card == nil {
			continue
		}
		for _, a := range card.Aspects {
			allowed[a] = true
		}
	}
	if len(allowed) == 0 {
		return nil
	}
	return allowed
}

func (h *DeckHandler) loadDeck(w http.ResponseWriter, r *http.Request) (*deck.Deck, bool) {
	deckID := chi.URLParam(r, "deckID")
	if deckID == "" {
		response.BadRequest(w, errors.New("deck ID is required"))
		return nil, false
	}

	d, err := h.decks.GetDeck(r.Context(), deckID)
	if err != nil {
		response.InternalError(w, err)
		return nil, false
	}
	if d == nil {
		response.NotFound(w, errors.New("deck not found"))
		return nil, false
	}

	d.Heal(h.store.Snapshot())
	return d, true
}
