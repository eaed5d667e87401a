package storage

import (
	"context"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
)

type memcacheConfig interface {
	Hosts() []string
}

// MemcacheStorage keeps items without expiration. Memcached may still evict
// them under memory pressure, which reads as an absent key.
type MemcacheStorage struct {
	client *memcache.Client
}

func NewMemcacheStorage(config memcacheConfig) (*MemcacheStorage, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	if err := mc.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping memcached")
	}
	return &MemcacheStorage{mc}, nil
}

func (s *MemcacheStorage) Read(_ context.Context, key string) (string, bool, error) {
	item, err := s.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "get item")
	}
	return string(item.Value), true, nil
}

func (s *MemcacheStorage) Write(_ context.Context, key, value string) error {
	err := s.client.Set(&memcache.Item{
		Key:   key,
		Value: []byte(value),
	})
	return errors.Wrap(err, "set item")
}

func (s *MemcacheStorage) Delete(_ context.Context, key string) error {
	err := s.client.Delete(key)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return errors.Wrap(err, "delete item")
	}
	return nil
}
