package ratecache

import (
	"context"
	"sync"
	"time"
)

// Store keeps raw cache entries together with the time they were fetched
type Store interface {
	Get(ctx context.Context, key string) (value []byte, fetchedAt time.Time, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, fetchedAt time.Time, retention time.Duration) error
}

type memoryEntry struct {
	value     []byte
	fetchedAt time.Time
}

// MemoryStore is a process local Store
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore initializes a new MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	return e.value, e.fetchedAt, ok, nil
}

// Set replaces the entry. Expired entries are left to the cache to reject.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte, fetchedAt time.Time, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{value: value, fetchedAt: fetchedAt}
	return nil
}
