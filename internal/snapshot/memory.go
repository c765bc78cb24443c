package snapshot

import (
	"context"
	"sync"

	"treasury/internal/domain"
)

// MemoryStore keeps the snapshot in process memory. It does not survive a
// restart and is meant for tests and throwaway development servers.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return append([]byte(nil), s.data...), nil
}
