package service

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/gallery/internal/domain"
)

// SelectionService persists the selection between sessions
type SelectionService struct {
	store  domain.SelectionStore
	logger *slog.Logger

	mu    sync.Mutex
	saved uint64 // version of the newest snapshot written
}

// NewSelectionService creates a new selection service
func NewSelectionService(store domain.SelectionStore, logger *slog.Logger) *SelectionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SelectionService{store: store, logger: logger}
}

// Load returns the saved selection, or an empty one
func (s *SelectionService) Load() domain.SelectionSnapshot {
	snap, ok := s.store.LoadSelection()
	if !ok {
		return domain.SelectionSnapshot{}
	}
	s.logger.Info("selection restored", "records", len(snap.Records), "bulkLimit", snap.BulkLimit)
	return snap
}

// Save stores snap unless a newer version was already written.
// An empty selection removes the saved copy.
func (s *SelectionService) Save(version uint64, snap domain.SelectionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if version <= s.saved {
		s.logger.Debug("skipping outdated selection save", "version", version, "saved", s.saved)
		return nil
	}

	var err error
	if len(snap.Records) == 0 && snap.BulkLimit == 0 {
		err = s.store.ClearSelection()
	} else {
		err = s.store.SaveSelection(snap)
	}
	if err != nil {
		s.logger.Error("failed to save selection", "version", version, "error", err)
		return err
	}
	s.saved = version
	return nil
}
