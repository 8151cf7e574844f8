package storage

import (
	"context"
	"slices"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	scopes map[string]map[string]memoryEntry
	ttl    time.Duration
	now    func() time.Time
}

// NewMemoryStore returns an empty store whose values live for ttl after their last write.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		scopes: make(map[string]map[string]memoryEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, scope, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.scopes[scope][key]
	if !ok || !m.now().Before(e.expiresAt) {
		return nil, ErrNotFound
	}
	return slices.Clone(e.value), nil
}

func (m *MemoryStore) Set(_ context.Context, scope, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.scopes[scope]
	if !ok {
		entries = make(map[string]memoryEntry)
		m.scopes[scope] = entries
	}
	entries[key] = memoryEntry{value: slices.Clone(value), expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, scope string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.scopes[scope]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(entries, k)
	}
	if len(entries) == 0 {
		delete(m.scopes, scope)
	}
	return nil
}

func (m *MemoryStore) Purge(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for scope, entries := range m.scopes {
		for k, e := range entries {
			if !now.Before(e.expiresAt) {
				delete(entries, k)
				removed++
			}
		}
		if len(entries) == 0 {
			delete(m.scopes, scope)
		}
	}
	return removed, nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
