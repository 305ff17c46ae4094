package storage

import (
	"context"
	"sync"

	"lipu/types"
)

// MemoryStore keeps the snapshot in process. It round-trips through JSON so
// callers never share slices with the stored copy.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*types.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoSnapshot
	}
	return decode(m.data)
}

func (m *MemoryStore) Save(ctx context.Context, snap types.Snapshot) error {
	b, err := encode(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = b
	m.mu.Unlock()
	return nil
}
