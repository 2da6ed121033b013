package storage

import (
	"context"
	"sync"
)

// MemKV is an in-memory KV backend. It is the default backend and the one
// tests use.
type MemKV struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemKV() *MemKV {
	return &MemKV{slots: make(map[string][]byte)}
}

func (m *MemKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *MemKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.slots[key] = stored
	return nil
}
