package repo

import (
	"context"
	"sync"
)

// MemSlot is a process-local Slot. Nothing survives a restart.
type MemSlot struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemSlot() *MemSlot {
	return &MemSlot{data: make(map[string][]byte)}
}

func (s *MemSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemSlot) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemSlot) Close() error { return nil }
