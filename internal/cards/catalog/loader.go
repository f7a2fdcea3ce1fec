package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/twinsuns/league-hq/internal/cards"
)

// LoadFile reads a catalog JSON file from disk. Both the bare card array
// and the API envelope shape are accepted.
func LoadFile(path string) ([]cards.CardRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog JSON into card records.
func Parse(data []byte) ([]cards.CardRecord, error) {
	var list []cards.CardRecord
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var envelope catalogResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parse catalog JSON: %w", err)
	}
	return envelope.Cards, nil
}

// LoadSnapshot loads a catalog file and builds its lookup snapshot.
func LoadSnapshot(path string, logger *slog.Logger) (*cards.Snapshot, error) {
	catalog, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return cards.NewSnapshot(catalog, logger), nil
}
