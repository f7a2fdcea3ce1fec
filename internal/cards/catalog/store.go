package catalog

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/twinsuns/league-hq/internal/cards"
)

// Store holds the current catalog snapshot and swaps it atomically on
// reload. Readers always see a complete snapshot, never a partial one.
type Store struct {
	path    string
	logger  *slog.Logger
	current atomic.Pointer[cards.Snapshot]
}

// NewStore loads the catalog file at path and returns a store serving it.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current catalog snapshot.
func (s *Store) Snapshot() *cards.Snapshot {
	return s.current.Load()
}

// Reload re-reads the catalog file and swaps in the new snapshot. On
// error the previous snapshot stays in place.
func (s *Store) Reload() error {
	snap, err := LoadSnapshot(s.path, s.logger)
	if err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}
	s.current.Store(snap)
	s.logger.Info("catalog snapshot loaded", "path", s.path, "cards", len(snap.Catalog))
	return nil
}

// Watcher returns a file watcher that reloads the store on catalog file
// changes. Reload failures keep the old snapshot and are logged.
func (s *Store) Watcher() *Watcher {
	return NewWatcher(s.path, func() {
		if err := s.Reload(); err != nil {
			s.logger.Error("catalog reload failed", "error", err)
		}
	}, s.logger)
}
