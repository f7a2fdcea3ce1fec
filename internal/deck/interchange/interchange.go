// Package interchange reads and writes the community decklist JSON format.
//
// The interchange ecosystem formats card ids as "SET_###" (uppercase set
// code, underscore, zero-padded 3-digit number, optional variant suffix),
// which differs from the internal normalized form, so the mapping here is
// kept separate from the lookup-key pipeline.
package interchange

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/twinsuns/league-hq/internal/cards"
	"github.com/twinsuns/league-hq/internal/deck"
)

// Metadata carries the decklist's descriptive fields.
type Metadata struct {
	Name   string `json:"name"`
	Author string `json:"author,omitempty"`
}

// CardEntry is one card reference with a copy count.
type CardEntry struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// Decklist is the interchange payload shape.
type Decklist struct {
	Metadata  Metadata    `json:"metadata"`
	Leader    *CardEntry  `json:"leader"`
	Base      *CardEntry  `json:"base"`
	Deck      []CardEntry `json:"deck"`
	Sideboard []CardEntry `json:"sideboard"`
}

// ImportResult accumulates the outcome of an import. Errors mean nothing
// was imported; warnings report individually skipped entries.
type ImportResult struct {
	Deck     *deck.Deck
	Warnings []string
}

var canonicalIDRegex = regexp.MustCompile(`^([a-z]+)-(\d+)([a-z]*)$`)

// ToInterchangeID converts a canonical card id to the interchange
// convention: "sor-7" -> "SOR_007", "twi-123a" -> "TWI_123A". Ids that do
// not have the canonical shape are returned uppercased with hyphens
// replaced, which is the closest well-formed spelling.
func ToInterchangeID(cardID string) string {
	m := canonicalIDRegex.FindStringSubmatch(cardID)
	if m == nil {
		return strings.ToUpper(strings.ReplaceAll(cardID, "-", "_"))
	}
	n, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%s_%03d%s", strings.ToUpper(m[1]), n, strings.ToUpper(m[3]))
}

// Export renders a deck as interchange JSON. Leader and base are emitted
// with count 1 per the schema.
func Export(d *deck.Deck, author string) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("deck is nil")
	}

	list := Decklist{
		Metadata:  Metadata{Name: d.Name, Author: author},
		Leader:    &CardEntry{ID: ToInterchangeID(d.Leader), Count: 1},
		Base:      &CardEntry{ID: ToInterchangeID(d.Base), Count: 1},
		Deck:      boardEntries(d.Mainboard),
		Sideboard: boardEntries(d.Sideboard),
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal decklist: %w", err)
	}
	return data, nil
}

func boardEntries(b deck.Board) []CardEntry {
	entries := make([]CardEntry, 0, len(b))
	for id, count := range b {
		entries = append(entries, CardEntry{ID: ToInterchangeID(id), Count: count})
	}
	return entries
}

// Import parses interchange JSON and resolves every listed id through the
// catalog snapshot. Malformed JSON or a missing/unresolvable leader or base
// aborts the import with no partial result; unresolvable list entries are
// skipped with a warning.
func Import(payload []byte, snap *cards.Snapshot) (*ImportResult, error) {
	var list Decklist
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}

	if list.Leader == nil || strings.TrimSpace(list.Leader.ID) == "" {
		return nil, fmt.Errorf("invalid payload: missing leader")
	}
	if list.Base == nil || strings.TrimSpace(list.Base.ID) == "" {
		return nil, fmt.Errorf("invalid payload: missing base")
	}

	leaderID := snap.Index.Resolve(list.Leader.ID)
	if leaderID == "" {
		return nil, fmt.Errorf("unknown leader %q", list.Leader.ID)
	}
	baseID := snap.Index.Resolve(list.Base.ID)
	if baseID == "" {
		return nil, fmt.Errorf("unknown base %q", list.Base.ID)
	}

	result := &ImportResult{
		Deck: &deck.Deck{
			Name:      list.Metadata.Name,
			Leader:    leaderID,
			Base:      baseID,
			Mainboard: deck.Board{},
			Sideboard: deck.Board{},
		},
	}

	importBoard(list.Deck, result.Deck.Mainboard, snap, result)
	importBoard(list.Sideboard, result.Deck.Sideboard, snap, result)
	return result, nil
}

func importBoard(entries []CardEntry, board deck.Board, snap *cards.Snapshot, result *ImportResult) {
	for _, e := range entries {
		id := snap.Index.Resolve(e.ID)
		if id == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("card %q not found in catalog, skipped", e.ID))
			continue
		}
		board.Add(id, e.Count)
	}
}
