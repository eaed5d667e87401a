package storage

import (
	"context"
	"sync"

	"max.ks1230/finance-tracker/internal/model/customerr"
)

type InMemStorage struct {
	mu    sync.RWMutex
	items map[string]string
	quota int
	used  int
}

type InMemOption func(*InMemStorage)

// WithQuota limits the sum of key and value lengths, 0 means unlimited.
func WithQuota(bytes int) InMemOption {
	return func(s *InMemStorage) {
		s.quota = bytes
	}
}

func NewInMemStorage(opts ...InMemOption) *InMemStorage {
	s := &InMemStorage{items: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemStorage) Read(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *InMemStorage) Write(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used + len(key) + len(value)
	if old, ok := s.items[key]; ok {
		used -= len(key) + len(old)
	}
	if s.quota > 0 && used > s.quota {
		return customerr.ErrQuotaExceeded
	}

	s.items[key] = value
	s.used = used
	return nil
}

func (s *InMemStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.items[key]; ok {
		s.used -= len(key) + len(old)
		delete(s.items, key)
	}
	return nil
}

// Keys returns the stored keys in no particular order.
func (s *InMemStorage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	return keys
}
