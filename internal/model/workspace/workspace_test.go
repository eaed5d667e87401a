package workspace

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/records"
	"max.ks1230/finance-tracker/internal/model/storage"
)

type testConfig struct{}

func (testConfig) BaseCurrency() string { return "LKR" }
func (testConfig) DemoCredentials() (string, string) { return "demo@example.com", "password123" }
func (testConfig) ScopeBudgetsToPeriod() bool { return false }
func (testConfig) RecentLimit() int { return 3 }

type namedNotifiers struct {
	names []string
}

func (n *namedNotifiers) For(name string) records.Notifier {
	n.names = append(n.names, name)
	return nil
}

func Test_OnTwoChats_ShouldKeepDataApart(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewInMemStorage()
	notifiers := &namedNotifiers{}
	pool := NewPool(medium, testConfig{}, WithNotifiers(notifiers))

	alice := pool.For(1)
	_, ok, err := alice.Auth.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	require.True(t, ok)
	_, err = alice.Tracker.AddExpense(ctx, finance.Expense{Amount: 10, Category: "Food"})
	require.NoError(t, err)

	bob := pool.For(2)
	_, err = bob.Tracker.Expenses(ctx)
	assert.ErrorIs(t, err, customerr.ErrNotLoggedIn)

	_, _, err = bob.Auth.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	exps, err := bob.Tracker.Expenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, exps)

	assert.Same(t, alice, pool.For(1))
	assert.Equal(t, []string{"chat:1", "chat:2"}, notifiers.names)
	for _, k := range medium.Keys() {
		assert.True(t, k == chatsKey || strings.HasPrefix(k, "chat:1:") || strings.HasPrefix(k, "chat:2:"), k)
	}
}

func Test_OnReports_ShouldReadWorkspaceExpenses(t *testing.T) {
	ctx := context.Background()
	ws := New(storage.NewInMemStorage(), "", testConfig{}, nil)

	_, _, err := ws.Auth.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	_, err = ws.Tracker.AddExpense(ctx, finance.Expense{Amount: 7, Category: "Food"})
	require.NoError(t, err)

	report, err := ws.Reports.GenerateReport(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 7.0, report.Total)
	assert.Equal(t, "LKR", report.Currency)
}

func Test_OnRestart_ShouldRestoreKnownChats(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewInMemStorage()

	before := NewPool(medium, testConfig{})
	before.For(7)
	before.For(3)
	_, _, err := before.For(3).Auth.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)

	after := NewPool(medium, testConfig{})
	require.NoError(t, after.Restore(ctx))

	var seen []int64
	after.Each(func(chatID int64, ws *Workspace) {
		seen = append(seen, chatID)
	})
	assert.Equal(t, []int64{3, 7}, seen)

	_, ok, err := after.For(3).Auth.Session().Current(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func Test_OnRestoreWithoutChats_ShouldStartEmpty(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewInMemStorage()
	require.NoError(t, NewPool(medium, testConfig{}).Restore(ctx))

	require.NoError(t, medium.Write(ctx, chatsKey, "garbage"))
	pool := NewPool(medium, testConfig{})
	require.NoError(t, pool.Restore(ctx))

	count := 0
	pool.Each(func(int64, *Workspace) { count++ })
	assert.Zero(t, count)
}
