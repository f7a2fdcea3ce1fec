// Package repository contains the database repositories for league data.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/twinsuns/league-hq/internal/pool"
)

// PoolRepository handles database operations for card-pool ledger rows.
// Quantities are upserted one card at a time; a quantity of zero deletes
// the row.
type PoolRepository interface {
	// UpsertQuantity sets an owner's quantity for one card, clamped to the
	// allowed range. Zero (after clamping) removes the row.
	UpsertQuantity(ctx context.Context, ownerID, seasonID, cardID string, quantity int) error

	// GetQuantity retrieves one owner's quantity for a card.
	GetQuantity(ctx context.Context, ownerID, seasonID, cardID string) (int, error)

	// ListEntries retrieves ledger rows, optionally filtered to one owner.
	// An empty ownerID returns all owners' rows.
	ListEntries(ctx context.Context, ownerID, seasonID string) ([]pool.Entry, error)
}

type poolRepository struct {
	db *sql.DB
}

// NewPoolRepository creates a new pool repository.
func NewPoolRepository(db *sql.DB) PoolRepository {
	return &poolRepository{db: db}
}

func (r *poolRepository) UpsertQuantity(ctx context.Context, ownerID, seasonID, cardID string, quantity int) error {
	if ownerID == "" || cardID == "" {
		return fmt.Errorf("owner and card id required")
	}

	q := pool.ClampQuantity(quantity)
	if q == 0 {
		query := `DELETE FROM card_pools WHERE owner_id = ? AND season_id = ? AND card_id = ?`
		if _, err := r.db.ExecContext(ctx, query, ownerID, seasonID, cardID); err != nil {
			return fmt.Errorf("failed to delete pool row: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO card_pools (owner_id, season_id, card_id, quantity, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, season_id, card_id) DO UPDATE SET
			quantity = excluded.quantity,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, ownerID, seasonID, cardID, q, time.Now()); err != nil {
		return fmt.Errorf("failed to upsert pool row: %w", err)
	}
	return nil
}

func (r *poolRepository) GetQuantity(ctx context.Context, ownerID, seasonID, cardID string) (int, error) {
	query := `SELECT quantity FROM card_pools WHERE owner_id = ? AND season_id = ? AND card_id = ?`

	var quantity int
	err := r.db.QueryRowContext(ctx, query, ownerID, seasonID, cardID).Scan(&quantity)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get pool quantity: %w", err)
	}
	return quantity, nil
}

func (r *poolRepository) ListEntries(ctx context.Context, ownerID, seasonID string) ([]pool.Entry, error) {
	query := `SELECT owner_id, season_id, card_id, quantity FROM card_pools WHERE season_id = ?`
	args := []interface{}{seasonID}
	if ownerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY owner_id, card_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pool entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []pool.Entry
	for rows.Next() {
		var e pool.Entry
		if err := rows.Scan(&e.OwnerID, &e.SeasonID, &e.CardID, &e.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan pool entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pool entries: %w", err)
	}
	return entries, nil
}
