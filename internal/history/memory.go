package history

import (
	"context"
	"sync"
)

// MemoryStore keeps records in a bounded in-process slice, newest first
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
	limit   int
}

// NewMemoryStore creates a memory store holding at most limit records
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = 1000
	}

	return &MemoryStore{limit: limit}
}

// Add prepends the record and trims the tail beyond the limit
func (m *MemoryStore) Add(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append([]Record{rec}, m.records...)
	if len(m.records) > m.limit {
		m.records = m.records[:m.limit]
	}
	return nil
}

// Recent returns up to limit records, newest first
func (m *MemoryStore) Recent(_ context.Context, limit int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || limit > len(m.records) {
		limit = len(m.records)
	}

	out := make([]Record, limit)
	copy(out, m.records[:limit])
	return out, nil
}

// Clear removes all records
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = nil
	return nil
}

// Count returns the number of stored records
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.records), nil
}

// Close is a no-op for the memory store
func (m *MemoryStore) Close() error {
	return nil
}
