package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/twinsuns/league-hq/internal/league"
)

// TournamentRepository persists tournaments and reported match results.
type TournamentRepository interface {
	// CreateTournament inserts a new tournament.
	CreateTournament(ctx context.Context, t *league.Tournament) error

	// GetTournament retrieves one tournament by id, or nil.
	GetTournament(ctx context.Context, id string) (*league.Tournament, error)

	// ListTournaments retrieves all tournaments, newest first.
	ListTournaments(ctx context.Context) ([]*league.Tournament, error)

	// RecordMatch appends a reported match result.
	RecordMatch(ctx context.Context, m *league.Match) error

	// ListMatches retrieves all reported matches for a tournament in
	// round order.
	ListMatches(ctx context.Context, tournamentID string) ([]league.Match, error)
}

type tournamentRepository struct {
	db *sql.DB
}

// NewTournamentRepository creates a new tournament repository.
func NewTournamentRepository(db *sql.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) CreateTournament(ctx context.Context, t *league.Tournament) error {
	if t == nil || t.ID == "" {
		return fmt.Errorf("tournament with id required")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tournaments (id, name, season_id, rounds, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.SeasonID, t.Rounds, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *tournamentRepository) GetTournament(ctx context.Context, id string) (*league.Tournament, error) {
	t := &league.Tournament{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, season_id, rounds FROM tournaments WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.SeasonID, &t.Rounds)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return t, nil
}

func (r *tournamentRepository) ListTournaments(ctx context.Context) ([]*league.Tournament, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, season_id, rounds FROM tournaments ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tournaments []*league.Tournament
	for rows.Next() {
		t := &league.Tournament{}
		if err := rows.Scan(&t.ID, &t.Name, &t.SeasonID, &t.Rounds); err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tournaments: %w", err)
	}
	return tournaments, nil
}

func (r *tournamentRepository) RecordMatch(ctx context.Context, m *league.Match) error {
	if m == nil || m.TournamentID == "" || m.PlayerA == "" {
		return fmt.Errorf("match with tournament and player required")
	}

	var playerB interface{}
	if m.PlayerB != "" {
		playerB = m.PlayerB
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO matches (tournament_id, round, player_a, player_b, result, reported_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.TournamentID, m.Round, m.PlayerA, playerB, m.Result, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record match: %w", err)
	}
	return nil
}

func (r *tournamentRepository) ListMatches(ctx context.Context, tournamentID string) ([]league.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tournament_id, round, player_a, COALESCE(player_b, ''), result
		FROM matches WHERE tournament_id = ? ORDER BY round, id
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []league.Match
	for rows.Next() {
		var m league.Match
		if err := rows.Scan(&m.TournamentID, &m.Round, &m.PlayerA, &m.PlayerB, &m.Result); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}
