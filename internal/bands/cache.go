package bands

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source provides a ranked word list and a stable identity for it.
type Source interface {
	ID() (string, error)
	RankedWords() ([]string, error)
}

// Storage persists built bands under a key.
type Storage interface {
	Load(ctx context.Context, key string) (Snapshot, bool, error)
	Save(ctx context.Context, key string, snap Snapshot) error
}

// Key derives the cache key for a source identity and boundary set.
func Key(sourceID string, boundaries Boundaries) string {
	return sourceID + ":" + strings.ReplaceAll(boundaries.String(), ",", "-")
}

// LoadOrBuild returns cached bands for source and boundaries, building and
// saving them on a miss. A nil storage behaves like NoStorage.
func LoadOrBuild(ctx context.Context, storage Storage, source Source, boundaries Boundaries, logger *slog.Logger) (*Bands, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if storage == nil {
		storage = NoStorage{}
	}
	if err := boundaries.Validate(); err != nil {
		return nil, err
	}

	id, err := source.ID()
	if err != nil {
		return nil, fmt.Errorf("failed to identify word source: %w", err)
	}
	key := Key(id, boundaries)

	snap, ok, err := storage.Load(ctx, key)
	if err != nil {
		logger.Warn("failed to load cached bands, rebuilding", "key", key, "error", err)
	} else if ok {
		b, rerr := restore(snap, boundaries)
		if rerr == nil {
			logger.Debug("loaded cached bands", "key", key, "words", b.Size())
			return b, nil
		}
		logger.Warn("discarding cached bands", "key", key, "error", rerr)
	}

	ranked, err := source.RankedWords()
	if err != nil {
		return nil, fmt.Errorf("failed to load ranked words: %w", err)
	}
	b, err := Build(ranked, boundaries)
	if err != nil {
		return nil, err
	}
	logger.Debug("built bands", "key", key, "bands", b.Len(), "words", b.Size())
	if err := storage.Save(ctx, key, b.Snapshot()); err != nil {
		logger.Warn("failed to cache bands", "key", key, "error", err)
	}
	return b, nil
}

func restore(snap Snapshot, boundaries Boundaries) (*Bands, error) {
	if !slices.Equal(snap.Boundaries, boundaries) {
		return nil, fmt.Errorf("cached boundaries %s do not match %s", snap.Boundaries, boundaries)
	}
	return FromSnapshot(snap)
}

// NoStorage never caches.
type NoStorage struct{}

// Load always misses.
func (NoStorage) Load(context.Context, string) (Snapshot, bool, error) {
	return Snapshot{}, false, nil
}

// Save discards the snapshot.
func (NoStorage) Save(context.Context, string, Snapshot) error {
	return nil
}

// MemoryStorage caches snapshots in process memory.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]Snapshot
}

// NewMemoryStorage returns an empty in-memory cache.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]Snapshot)}
}

// Load returns the snapshot stored under key.
func (m *MemoryStorage) Load(_ context.Context, key string) (Snapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.items[key]
	return snap, ok, nil
}

// Save stores snap under key.
func (m *MemoryStorage) Save(_ context.Context, key string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = snap
	return nil
}

// Len returns the number of cached snapshots.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// FileStorage caches snapshots as gzip-compressed JSON files in Dir.
type FileStorage struct {
	Dir string
}

func (f FileStorage) path(key string) string {
	name := strings.NewReplacer(":", "_", "/", "_", string(filepath.Separator), "_").Replace(key)
	return filepath.Join(f.Dir, "bands-"+name+".json.gz")
}

// Load reads the snapshot stored under key.
func (f FileStorage) Load(_ context.Context, key string) (Snapshot, bool, error) {
	file, err := os.Open(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("failed to open cached bands: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer func() {
		_ = gz.Close()
	}()

	var snap Snapshot
	if err := json.NewDecoder(gz).Decode(&snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to decode cached bands: %w", err)
	}
	return snap, true, nil
}

// Save writes snap under key, replacing any previous file atomically.
func (f FileStorage) Save(_ context.Context, key string, snap Snapshot) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(f.Dir, "bands-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	gz := gzip.NewWriter(tmpFile)
	if err := json.NewEncoder(gz).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode bands: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to flush bands: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path(key)); err != nil {
		return fmt.Errorf("failed to move bands into cache: %w", err)
	}
	return nil
}
