// Package pool aggregates raw card-pool ledger rows into per-card
// quantities, collapsing identifier spelling variants through the lookup
// index.
package pool

import (
	"github.com/twinsuns/league-hq/internal/cards/identity"
)

// MaxQuantity bounds how many physical copies of one card an owner can
// register.
const MaxQuantity = 99

// Entry is one card-pool ledger row: how many copies of a card a specific
// owner has available, optionally scoped to a season. A quantity of zero is
// equivalent to absence.
type Entry struct {
	OwnerID  string `json:"owner_id"`
	SeasonID string `json:"season_id,omitempty"`
	CardID   string `json:"card_id"`
	Quantity int    `json:"quantity"`
}

// Scope selects which ledger rows an aggregation covers.
type Scope struct {
	// OwnerFilter keeps only rows for one owner when non-empty.
	OwnerFilter string

	// MergeOwners sums quantities across all owners ("all owners" view).
	// When false the entry list is assumed pre-filtered to one owner;
	// duplicate rows for the same id still sum, which is safe and
	// idempotent for disjoint sources.
	MergeOwners bool
}

// ClampQuantity bounds a raw quantity to [0, MaxQuantity]. Out-of-range
// values are clamped silently rather than rejected; the inputs are casual
// data entry.
func ClampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// Resolver resolves a raw card identifier to its canonical id, returning ""
// when unresolvable.
type Resolver func(raw string) string

// Aggregate merges ledger rows into per-card quantities. Each row's id is
// resolved through the lookup index; unresolved ids fall back to their
// padding-stripped normalized form so the quantity is not silently dropped.
// Clamping applies per row, not to the sum: a merged view across owners can
// legitimately exceed MaxQuantity.
func Aggregate(entries []Entry, resolve Resolver, scope Scope) map[string]int {
	quantities := make(map[string]int)

	for _, e := range entries {
		if !scope.MergeOwners && scope.OwnerFilter != "" && e.OwnerID != scope.OwnerFilter {
			continue
		}

		id := ""
		if resolve != nil {
			id = resolve(e.CardID)
		}
		if id == "" {
			id = identity.StripNumericPadding(e.CardID)
		}
		if id == "" {
			continue
		}

		quantities[id] += ClampQuantity(e.Quantity)
	}

	for id, q := range quantities {
		if q <= 0 {
			delete(quantities, id)
		}
	}
	return quantities
}

// Quantity reads the pool count for a card id, falling back to scanning all
// lookup-key variants of the id. The fallback covers rows stored under a
// spelling different from the catalog's canonical id.
func Quantity(quantities map[string]int, cardID string) int {
	if q, ok := quantities[cardID]; ok {
		return q
	}

	byVariant := make(map[string]int, len(quantities))
	for id, q := range quantities {
		for _, key := range identity.BuildLookupKeys(id) {
			if _, ok := byVariant[key]; !ok {
				byVariant[key] = q
			}
		}
	}
	for _, key := range identity.BuildLookupKeys(cardID) {
		if q, ok := byVariant[key]; ok {
			return q
		}
	}
	return 0
}
