package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OnEmptyYAML_ShouldUseDefaults(t *testing.T) {
	s, err := FromYAML([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, "LKR", s.App().BaseCurrency())
	email, password := s.App().DemoCredentials()
	assert.Equal(t, "demo@example.com", email)
	assert.Equal(t, "password123", password)
	assert.Equal(t, 3, s.App().RecentLimit())
	assert.False(t, s.App().ScopeBudgetsToPeriod())
	assert.Equal(t, BackendMemory, s.Storage().Backend())
	assert.Equal(t, "data/tracker.db", s.Sqlite().Path())
	assert.Equal(t, "tracker-changes", s.Kafka().ChangesTopic())
	assert.False(t, s.Kafka().Enabled())
	assert.False(t, s.Jaeger().Enabled())
}

func Test_OnYAML_ShouldOverrideSections(t *testing.T) {
	s, err := FromYAML([]byte(`
app:
  currency: USD
  period-scoped-budgets: true
storage:
  backend: sqlite
  quota-bytes: 5242880
sqlite:
  file: /tmp/t.db
kafka:
  brokers: [localhost:9092]
  changes-topic: changes
`))
	require.NoError(t, err)

	assert.Equal(t, "USD", s.App().BaseCurrency())
	assert.True(t, s.App().ScopeBudgetsToPeriod())
	assert.Equal(t, 3, s.App().RecentLimit())
	assert.Equal(t, BackendSqlite, s.Storage().Backend())
	assert.Equal(t, 5242880, s.Storage().Quota())
	assert.Equal(t, "/tmp/t.db", s.Sqlite().Path())
	assert.True(t, s.Kafka().Enabled())
	assert.Equal(t, "changes", s.Kafka().ChangesTopic())
}

func Test_OnNew_ShouldApplyEnvOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: sqlite\n"), 0o600))
	t.Setenv(configEnvKey, path)
	t.Setenv("TRACKER_STORAGE_BACKEND", "postgres")
	t.Setenv("TRACKER_CURRENCY", "EUR")

	s, err := New()
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, s.Storage().Backend())
	assert.Equal(t, "EUR", s.App().BaseCurrency())
}

func Test_OnMissingExplicitFile_ShouldFail(t *testing.T) {
	t.Setenv(configEnvKey, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := New()
	assert.Error(t, err)
}
