package kv

import (
	"context"
	"sync"
)

type MemStore struct {
	mu    sync.RWMutex
	m     map[string][]byte
	quota int
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string][]byte{}}
}

// NewMemStoreWithQuota rejects any value larger than quota bytes, the way a
// browser rejects an oversized localStorage write.
func NewMemStoreWithQuota(quota int) *MemStore {
	s := NewMemStore()
	s.quota = quota
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.m[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemStore) Set(ctx context.Context, key string, value []byte) error {
	if s.quota > 0 && len(value) > s.quota {
		return ErrQuotaExceeded
	}

	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = v
	return nil
}

func (s *MemStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
