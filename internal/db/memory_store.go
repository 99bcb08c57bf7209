package db

import (
	"sync"
)

// MemoryStore is a map-backed SnapshotStore. Nothing survives the process.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string][]byte{}}
}

func (s *MemoryStore) LoadSnapshot(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *MemoryStore) SaveSnapshot(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = append([]byte(nil), data...)
	return nil
}

// Close is a no-op so MemoryStore matches SQLiteStore's shape
func (s *MemoryStore) Close() error {
	return nil
}
