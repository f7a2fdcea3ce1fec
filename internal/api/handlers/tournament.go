package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/twinsuns/league-hq/internal/api/response"
	"github.com/twinsuns/league-hq/internal/league"
	"github.com/twinsuns/league-hq/internal/storage/repository"
)

// TournamentHandler serves tournament setup, match reporting, standings,
// and schedule generation.
type TournamentHandler struct {
	repo repository.TournamentRepository
}

// NewTournamentHandler creates a new TournamentHandler.
func NewTournamentHandler(repo repository.TournamentRepository) *TournamentHandler {
	return &TournamentHandler{repo: repo}
}

// CreateTournament registers a new tournament.
func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var t league.Tournament
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if t.ID == "" || t.Name == "" {
		response.BadRequest(w, errors.New("tournament id and name are required"))
		return
	}

	if err := h.repo.CreateTournament(r.Context(), &t); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Created(w, t)
}

// GetTournament returns one tournament by id.
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTournament(w, r)
	if !ok {
		return
	}
	response.Success(w, t)
}

// ListTournaments returns all registered tournaments.
func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.repo.ListTournaments(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, tournaments)
}

// RecordMatch stores one reported match result. An empty player_b records
// a bye for player_a.
func (h *TournamentHandler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTournament(w, r)
	if !ok {
		return
	}

	var m league.Match
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	m.TournamentID = t.ID
	if m.PlayerA == "" {
		response.BadRequest(w, errors.New("player_a is required"))
		return
	}
	if m.PlayerB != "" {
		switch m.Result {
		case league.ResultWin, league.ResultLoss, league.ResultDraw:
		default:
			response.BadRequest(w, errors.New("result must be win, loss, or draw"))
			return
		}
	}

	if err := h.repo.RecordMatch(r.Context(), &m); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Created(w, m)
}

// ListMatches returns the reported matches for a tournament.
func (h *TournamentHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTournament(w, r)
	if !ok {
		return
	}

	matches, err := h.repo.ListMatches(r.Context(), t.ID)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, matches)
}

// GetStandings computes the points table from reported matches.
func (h *TournamentHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTournament(w, r)
	if !ok {
		return
	}

	matches, err := h.repo.ListMatches(r.Context(), t.ID)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, league.ComputeStandings(matches))
}

// ScheduleRequest lists the players to pair.
type ScheduleRequest struct {
	Players []string `json:"players"`
}

// GenerateSchedule produces a full round-robin schedule for the given
// players. Odd player counts produce one bye per round.
func (h *TournamentHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if len(req.Players) < 2 {
		response.BadRequest(w, errors.New("at least two players are required"))
		return
	}

	response.Success(w, league.RoundRobinSchedule(req.Players))
}

func (h *TournamentHandler) loadTournament(w http.ResponseWriter, r *http.Request) (*league.Tournament, bool) {
	id := chi.URLParam(r, "tournamentID")
	if id == "" {
		response.BadRequest(w, errors.New("tournament ID is required"))
		return nil, false
	}

	t, err := h.repo.GetTournament(r.Context(), id)
	if err != nil {
		response.InternalError(w, err)
		return nil, false
	}
	if t == nil {
		response.NotFound(w, errors.New("tournament not found"))
		return nil, false
	}
	return t, true
}
