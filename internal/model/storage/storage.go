package storage

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
)

// Medium is the key-value durability layer beneath the record store.
// Read reports ok=false for an absent key. Deleting an absent key is not an error.
type Medium interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type storageConfig interface {
	Backend() string
	Quota() int
}

type sqliteConfig interface {
	Path() string
}

// Configs groups the sections Open may need, only the selected backend's is read.
type Configs struct {
	Storage   storageConfig
	Sqlite    sqliteConfig
	Postgres  postgresConfig
	Memcached memcacheConfig
}

// Closer is implemented by media holding connections.
type Closer interface {
	Close() error
}

// Open builds the medium selected by the storage backend name.
func Open(cfg Configs) (Medium, error) {
	backend := cfg.Storage.Backend()
	logger.Info("open storage", zap.String("backend", backend))

	var (
		m   Medium
		err error
	)
	switch backend {
	case "", "memory":
		return NewInMemStorage(WithQuota(cfg.Storage.Quota())), nil
	case "sqlite":
		m, err = NewSqliteStorage(cfg.Sqlite.Path())
	case "postgres":
		m, err = NewPostgresStorage(cfg.Postgres)
	case "memcached":
		m, err = NewMemcacheStorage(cfg.Memcached)
	default:
		err = fmt.Errorf("unknown backend %q", backend)
	}
	if err != nil {
		return nil, errors.Wrap(err, "open storage")
	}
	return m, nil
}

// Close releases the medium if it holds resources.
func Close(m Medium) {
	c, ok := m.(Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		logger.Error("failed to close storage", zap.Error(err))
	}
}
