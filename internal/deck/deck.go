// Package deck models a deck under construction (leader, base, mainboard,
// sideboard) and reconciles its card usage against an owner's pool.
package deck

import (
	"github.com/twinsuns/league-hq/internal/cards"
	"github.com/twinsuns/league-hq/internal/cards/identity"
	"github.com/twinsuns/league-hq/internal/pool"
)

// Board maps canonical card ids to positive copy counts. Quantities are
// clamped to [0, 99]; a zero entry is removed rather than stored.
type Board map[string]int

// Deck is the transient editing state of a decklist. Leader and base are
// single-slot fields outside the boards and are excluded from mainboard
// quantity rules.
type Deck struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Leader    string `json:"leader"`
	Base      string `json:"base"`
	Mainboard Board  `json:"mainboard"`
	Sideboard Board  `json:"sideboard"`
}

// Set writes a quantity for a card, clamping to the allowed range and
// deleting the entry when the clamped value is zero.
func (b Board) Set(cardID string, quantity int) {
	if cardID == "" {
		return
	}
	q := pool.ClampQuantity(quantity)
	if q == 0 {
		delete(b, cardID)
		return
	}
	b[cardID] = q
}

// Add adjusts a card's quantity by delta, with the same clamping rules.
func (b Board) Add(cardID string, delta int) {
	b.Set(cardID, b[cardID]+delta)
}

// Total returns the summed quantity across the board.
func (b Board) Total() int {
	total := 0
	for _, q := range b {
		total += q
	}
	return total
}

// Clone returns an independent copy.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for id, q := range b {
		out[id] = q
	}
	return out
}

// Heal re-normalizes every board entry through the current catalog
// snapshot, collapsing spelling drift between save time and catalog
// updates. Unresolvable ids keep their padding-stripped spelling so no
// quantity is lost. Called on deck load so repeated load/save cycles are
// the identity transform.
func (b Board) Heal(snap *cards.Snapshot) Board {
	healed := make(Board, len(b))
	for raw, q := range b {
		id := ""
		if snap != nil {
			id = snap.Index.Resolve(raw)
		}
		if id == "" {
			id = identity.StripNumericPadding(raw)
		}
		healed.Set(id, healed[id]+q)
	}
	return healed
}

// Heal re-normalizes the deck's boards and single-slot fields in place.
func (d *Deck) Heal(snap *cards.Snapshot) {
	if snap == nil {
		return
	}
	if id := snap.Index.Resolve(d.Leader); id != "" {
		d.Leader = id
	}
	if id := snap.Index.Resolve(d.Base); id != "" {
		d.Base = id
	}
	d.Mainboard = d.Mainboard.Heal(snap)
	d.Sideboard = d.Sideboard.Heal(snap)
}
