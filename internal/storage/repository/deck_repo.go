package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/twinsuns/league-hq/internal/deck"
)

// DeckRepository persists registered decks. Boards are stored one row per
// (board, card); load reassembles the id -> quantity maps.
type DeckRepository interface {
	// SaveDeck inserts or replaces a deck and its board contents.
	SaveDeck(ctx context.Context, tournamentID, ownerID string, d *deck.Deck) error

	// GetDeck retrieves one deck by id.
	GetDeck(ctx context.Context, deckID string) (*deck.Deck, error)

	// ListDecks retrieves all decks registered for a tournament.
	ListDecks(ctx context.Context, tournamentID string) ([]*deck.Deck, error)

	// DeleteDeck removes a deck and its cards.
	DeleteDeck(ctx context.Context, deckID string) error
}

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new deck repository.
func NewDeckRepository(db *sql.DB) DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) SaveDeck(ctx context.Context, tournamentID, ownerID string, d *deck.Deck) error {
	if d == nil || d.ID == "" {
		return fmt.Errorf("deck with id required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO decks (id, tournament_id, owner_id, name, leader, base, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tournament_id = excluded.tournament_id,
			owner_id = excluded.owner_id,
			name = excluded.name,
			leader = excluded.leader,
			base = excluded.base,
			updated_at = excluded.updated_at
	`, d.ID, tournamentID, ownerID, d.Name, d.Leader, d.Base, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert deck: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ?`, d.ID); err != nil {
		return fmt.Errorf("failed to clear deck cards: %w", err)
	}

	insert := `INSERT INTO deck_cards (deck_id, board, card_id, quantity) VALUES (?, ?, ?, ?)`
	for board, entries := range map[string]deck.Board{"main": d.Mainboard, "side": d.Sideboard} {
		for cardID, quantity := range entries {
			if quantity <= 0 {
				continue
			}
			if _, err := tx.ExecContext(ctx, insert, d.ID, board, cardID, quantity); err != nil {
				return fmt.Errorf("failed to insert deck card: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck save: %w", err)
	}
	return nil
}

func (r *deckRepository) GetDeck(ctx context.Context, deckID string) (*deck.Deck, error) {
	d := &deck.Deck{ID: deckID, Mainboard: deck.Board{}, Sideboard: deck.Board{}}

	err := r.db.QueryRowContext(ctx,
		`SELECT name, leader, base FROM decks WHERE id = ?`, deckID,
	).Scan(&d.Name, &d.Leader, &d.Base)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	if err := r.loadCards(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *deckRepository) ListDecks(ctx context.Context, tournamentID string) ([]*deck.Deck, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, leader, base FROM decks WHERE tournament_id = ? ORDER BY name, id`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var decks []*deck.Deck
	for rows.Next() {
		d := &deck.Deck{Mainboard: deck.Board{}, Sideboard: deck.Board{}}
		if err := rows.Scan(&d.ID, &d.Name, &d.Leader, &d.Base); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decks: %w", err)
	}

	for _, d := range decks {
		if err := r.loadCards(ctx, d); err != nil {
			return nil, err
		}
	}
	return decks, nil
}

func (r *deckRepository) DeleteDeck(ctx context.Context, deckID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ?`, deckID); err != nil {
		return fmt.Errorf("failed to delete deck cards: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, deckID); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	return nil
}

func (r *deckRepository) loadCards(ctx context.Context, d *deck.Deck) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT board, card_id, quantity FROM deck_cards WHERE deck_id = ?`, d.ID)
	if err != nil {
		return fmt.Errorf("failed to load deck cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var board, cardID string
		var quantity int
		if err := rows.Scan(&board, &cardID, &quantity); err != nil {
			return fmt.Errorf("failed to scan deck card: %w", err)
		}
		switch board {
		case "main":
			d.Mainboard.Set(cardID, quantity)
		case "side":
			d.Sideboard.Set(cardID, quantity)
		}
	}
	return rows.Err()
}
