package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gallery/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSelection = []byte("selection")
)

const keySnapshot = "snapshot"

// SelectionStore implements domain.SelectionStore using BoltDB.
type SelectionStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of the last written or read value per key
	cache map[string][]byte
}

// NewSelectionStore opens the store below baseDir. Each catalog URL gets its
// own database so selections from different sources never mix.
// An empty baseDir gives a memory-only store.
func NewSelectionStore(baseDir, catalogURL string) (*SelectionStore, error) {
	if baseDir == "" {
		// Memory-only mode (no persistence)
		return &SelectionStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseDir
	if catalogURL != "" {
		dir = filepath.Join(baseDir, hashCatalogURL(catalogURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "gallery.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSelection)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SelectionStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashCatalogURL(catalogURL string) string {
	normalized := strings.TrimRight(strings.ToLower(catalogURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Close releases the database
func (s *SelectionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *SelectionStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *SelectionStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *SelectionStore) delete(bucket []byte, key string) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// === Selection ===

// LoadSelection returns the saved selection
func (s *SelectionStore) LoadSelection() (domain.SelectionSnapshot, bool) {
	var snap domain.SelectionSnapshot
	ok := s.get(bucketSelection, keySnapshot, &snap)
	return snap, ok
}

// SaveSelection replaces the saved selection
func (s *SelectionStore) SaveSelection(snap domain.SelectionSnapshot) error {
	if snap.Records == nil {
		snap.Records = []domain.Artwork{}
	}
	return s.set(bucketSelection, keySnapshot, snap)
}

// ClearSelection removes the saved selection
func (s *SelectionStore) ClearSelection() error {
	return s.delete(bucketSelection, keySnapshot)
}
