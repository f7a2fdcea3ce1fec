package cards

import (
	"log/slog"

	"github.com/twinsuns/league-hq/internal/cards/identity"
)

// Index maps every known lookup-key variant to a canonical card id.
type Index map[string]string

// Snapshot bundles a catalog with its lookup index. It is built once per
// catalog fetch and passed by reference to consumers; nothing mutates it
// after construction.
type Snapshot struct {
	Catalog []CardRecord
	ByID    map[string]*CardRecord
	Index   Index
}

// BuildIndex computes every lookup-key variant for each record's card id
// and maps it to that id. On a key collision between two records the
// earliest-listed record keeps the key; the collision is logged because it
// indicates an upstream catalog error, not normal aliasing.
func BuildIndex(catalog []CardRecord, logger *slog.Logger) Index {
	if logger == nil {
		logger = slog.Default()
	}

	index := make(Index, len(catalog)*2)
	for i := range catalog {
		id := catalog[i].CardID
		for _, key := range identity.BuildLookupKeys(id) {
			if existing, ok := index[key]; ok {
				if existing != id {
					logger.Warn("lookup key collision, keeping earliest record",
						"key", key, "kept", existing, "dropped", id)
				}
				continue
			}
			index[key] = id
		}
	}
	return index
}

// Resolve tries each lookup-key variant of raw against the index and
// returns the first matching canonical card id, or "" when no spelling
// matches. It never errors; "" means "no match possible".
func (idx Index) Resolve(raw string) string {
	for _, key := range identity.BuildLookupKeys(raw) {
		if id, ok := idx[key]; ok {
			return id
		}
	}
	return ""
}

// NewSnapshot builds the immutable catalog snapshot used by the pool
// aggregator, reconciler, and analyzer.
func NewSnapshot(catalog []CardRecord, logger *slog.Logger) *Snapshot {
	byID := make(map[string]*CardRecord, len(catalog))
	for i := range catalog {
		byID[catalog[i].CardID] = &catalog[i]
	}
	return &Snapshot{
		Catalog: catalog,
		ByID:    byID,
		Index:   BuildIndex(catalog, logger),
	}
}

// Card returns the record for a canonical card id, or nil.
func (s *Snapshot) Card(cardID string) *CardRecord {
	return s.ByID[cardID]
}

// ResolveCard resolves any identifier spelling to its record, or nil.
func (s *Snapshot) ResolveCard(raw string) *CardRecord {
	id := s.Index.Resolve(raw)
	if id == "" {
		return nil
	}
	return s.ByID[id]
}

// ResolveDisplayName returns the resolved card's display name, or the
// numeric-padding-stripped form of raw when unresolvable. The raw string is
// never returned verbatim so "SET-007" and "set-7" render identically even
// when unknown.
func (s *Snapshot) ResolveDisplayName(raw string) string {
	if card := s.ResolveCard(raw); card != nil {
		return card.Name
	}
	return identity.StripNumericPadding(raw)
}
