// AngelaMos | 2026
// memstore.go

package listview

import "sync"

// MemoryStore is a map-backed Store for tests and single-process tools.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]any)}
}

func (m *MemoryStore) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *MemoryStore) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}
