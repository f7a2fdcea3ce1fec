// Package meta aggregates all decks registered for a tournament into the
// snapshot the meta-analysis dashboards render: archetype counts,
// most-played cards, and aspect distribution across the field.
package meta

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/twinsuns/league-hq/internal/analysis"
	"github.com/twinsuns/league-hq/internal/cards"
	"github.com/twinsuns/league-hq/internal/deck"
)

// DeckSource lists the registered decks for a tournament.
type DeckSource interface {
	ListDecks(ctx context.Context, tournamentID string) ([]*deck.Deck, error)
}

// Service computes meta snapshots over a catalog snapshot and a deck store.
type Service struct {
	decks  DeckSource
	logger *slog.Logger
}

// NewService creates a meta service.
func NewService(decks DeckSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{decks: decks, logger: logger}
}

// CardUsage reports how widely one card is played across the field.
type CardUsage struct {
	CardID string `json:"card_id"`
	Name   string `json:"name"`
	Copies int    `json:"copies"` // total quantity across all decks
	Decks  int    `json:"decks"`  // number of decks running it
}

// MetaSnapshot is the derived field-wide view for one tournament.
type MetaSnapshot struct {
	TournamentID string            `json:"tournament_id"`
	DeckCount    int               `json:"deck_count"`
	Archetypes   []analysis.Bucket `json:"archetypes"`
	MostPlayed   []CardUsage       `json:"most_played"`
	ByAspect     []analysis.Bucket `json:"by_aspect"`
	ByCost       []analysis.Bucket `json:"by_cost"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// mostPlayedLimit caps the most-played list for dashboard display.
const mostPlayedLimit = 25

// Snapshot builds the meta snapshot for a tournament. Decks whose leader or
// base no longer resolves are still counted under a degraded archetype
// label rather than dropped.
func (s *Service) Snapshot(ctx context.Context, tournamentID string, snap *cards.Snapshot) (*MetaSnapshot, error) {
	decks, err := s.decks.ListDecks(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list decks for %s: %w", tournamentID, err)
	}

	archetypes := make(map[string]int)
	copies := make(map[string]int)
	deckCounts := make(map[string]int)
	var fieldEntries []analysis.Entry

	for _, d := range decks {
		d.Heal(snap)
		archetypes[archetypeLabel(d, snap)]++

		for id, q := range deck.CombineBoardQuantities(d.Mainboard, d.Sideboard) {
			copies[id] += q
			deckCounts[id]++
			if card := snap.Card(id); card != nil {
				fieldEntries = append(fieldEntries, analysis.Entry{Card: card, Quantity: q})
			}
		}
	}

	field := analysis.Analyze(fieldEntries, nil)

	usage := make([]CardUsage, 0, len(copies))
	for id, total := range copies {
		usage = append(usage, CardUsage{
			CardID: id,
			Name:   snap.ResolveDisplayName(id),
			Copies: total,
			Decks:  deckCounts[id],
		})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Decks != usage[j].Decks {
			return usage[i].Decks > usage[j].Decks
		}
		if usage[i].Copies != usage[j].Copies {
			return usage[i].Copies > usage[j].Copies
		}
		return usage[i].CardID < usage[j].CardID
	})
	if len(usage) > mostPlayedLimit {
		usage = usage[:mostPlayedLimit]
	}

	ms := &MetaSnapshot{
		TournamentID: tournamentID,
		DeckCount:    len(decks),
		Archetypes:   bucketize(archetypes),
		MostPlayed:   usage,
		ByAspect:     field.ByAspect,
		ByCost:       field.ByCost,
		GeneratedAt:  time.Now(),
	}

	s.logger.Debug("meta snapshot built",
		"tournament", tournamentID, "decks", ms.DeckCount, "archetypes", len(ms.Archetypes))
	return ms, nil
}

// archetypeLabel names a deck's archetype by its leader and base. The field
// convention is "<leader> / <base>"; unresolvable ids degrade to their
// humanized spelling.
func archetypeLabel(d *deck.Deck, snap *cards.Snapshot) string {
	return snap.ResolveDisplayName(d.Leader) + " / " + snap.ResolveDisplayName(d.Base)
}

func bucketize(counts map[string]int) []analysis.Bucket {
	buckets := make([]analysis.Bucket, 0, len(counts))
	for label, value := range counts {
		buckets = append(buckets, analysis.Bucket{Label: label, Value: value})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Value != buckets[j].Value {
			return buckets[i].Value > buckets[j].Value
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}
