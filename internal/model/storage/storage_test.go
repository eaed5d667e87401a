package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

type backendConfig struct {
	backend string
	quota   int
}

func (c backendConfig) Backend() string { return c.backend }

func (c backendConfig) Quota() int { return c.quota }

type pathConfig string

func (p pathConfig) Path() string { return string(p) }

func testMedium(t *testing.T, m Medium) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := m.Read(ctx, "expenses")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Write(ctx, "expenses", `[{"id":1}]`))
	require.NoError(t, m.Write(ctx, "expenses", `[{"id":2}]`))
	v, ok, err := m.Read(ctx, "expenses")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":2}]`, v)

	require.NoError(t, m.Delete(ctx, "expenses"))
	require.NoError(t, m.Delete(ctx, "expenses"))
	_, ok, err = m.Read(ctx, "expenses")
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_OnInMemStorage_ShouldBehaveAsMedium(t *testing.T) {
	testMedium(t, NewInMemStorage())
}

func Test_OnSqliteStorage_ShouldPersistAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tracker.db")

	s, err := NewSqliteStorage(path)
	require.NoError(t, err)
	testMedium(t, s)
	require.NoError(t, s.Write(ctx, "goals", `[]`))
	require.NoError(t, s.Close())

	s, err = NewSqliteStorage(path)
	require.NoError(t, err)
	defer Close(s)
	v, ok, err := s.Read(ctx, "goals")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func Test_OnQuota_ShouldRejectWriteAndKeepValue(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage(WithQuota(20))

	require.NoError(t, s.Write(ctx, "k", "0123456789"))
	err := s.Write(ctx, "k", "01234567890123456789")
	assert.ErrorIs(t, err, customerr.ErrQuotaExceeded)

	v, _, _ := s.Read(ctx, "k")
	assert.Equal(t, "0123456789", v)

	require.NoError(t, s.Delete(ctx, "k"))
	assert.NoError(t, s.Write(ctx, "other", "0123456789"))
}

func Test_OnPrefixed_ShouldNamespaceKeys(t *testing.T) {
	ctx := context.Background()
	base := NewInMemStorage()
	a, b := Prefixed(base, "chat:1:"), Prefixed(base, "chat:2:")

	require.NoError(t, a.Write(ctx, "user", "alice"))
	_, ok, err := b.Read(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, _ := base.Read(ctx, "chat:1:user")
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	require.NoError(t, a.Delete(ctx, "user"))
	assert.Empty(t, base.Keys())
}

func Test_OnOpen_ShouldSelectBackend(t *testing.T) {
	m, err := Open(Configs{Storage: backendConfig{backend: "memory", quota: 100}})
	require.NoError(t, err)
	assert.IsType(t, &InMemStorage{}, m)
	Close(m)

	m, err = Open(Configs{
		Storage: backendConfig{backend: "sqlite"},
		Sqlite:  pathConfig(filepath.Join(t.TempDir(), "t.db")),
	})
	require.NoError(t, err)
	assert.IsType(t, &SQLStorage{}, m)
	Close(m)

	_, err = Open(Configs{Storage: backendConfig{backend: "floppy"}})
	assert.Error(t, err)
}
