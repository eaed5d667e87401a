package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/model/storage"
	"max.ks1230/finance-tracker/internal/model/workspace"
)

type testConfig struct{}

func (testConfig) BaseCurrency() string { return "LKR" }

func (testConfig) DemoCredentials() (string, string) { return "demo@example.com", "password123" }

func (testConfig) ScopeBudgetsToPeriod() bool { return false }

func (testConfig) RecentLimit() int { return 3 }

// runner executes commands against one medium, the way separate
// invocations of the binary share a database file.
type runner struct {
	medium *storage.InMemStorage
	opened int
	closed int
}

func newRunner() *runner {
	return &runner{medium: storage.NewInMemStorage()}
}

func (r *runner) run(args ...string) (string, error) {
	root := NewRootCmd(func() (*workspace.Workspace, func(), error) {
		r.opened++
		return workspace.New(r.medium, "", testConfig{}, nil), func() { r.closed++ }, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (r *runner) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := r.run(args...)
	require.NoError(t, err, out)
	return out
}

func Test_OnCommandWhileLoggedOut_ShouldExplain(t *testing.T) {
	r := newRunner()

	_, err := r.run("expense", "list")
	require.Error(t, err)
	assert.Contains(t, Explain(err), "not logged in")

	_, err = r.run("login", "demo@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", Explain(err))
	assert.Equal(t, r.opened, r.closed)
}

func Test_OnExpenseCommands_ShouldPersistAcrossRuns(t *testing.T) {
	r := newRunner()
	assert.Contains(t, r.mustRun(t, "login", "demo@example.com", "password123"), "Welcome back, Demo User!")

	out := r.mustRun(t, "expense", "add", "Groceries", "12.50", "--date", "2024-03-01", "-m", "milk")
	assert.Contains(t, out, "Added expense")

	list := r.mustRun(t, "expense", "list")
	assert.Contains(t, list, "2024-03-01")
	assert.Contains(t, list, "Groceries")
	assert.Contains(t, list, currency.Format(12.5, "LKR"))
	assert.Contains(t, list, "milk")
	assert.Contains(t, list, "Highest: Groceries")

	id := strings.Fields(list)[0]
	out = r.mustRun(t, "expense", "edit", id, "--amount", "20")
	assert.Contains(t, out, currency.Format(20, "LKR"))

	assert.Contains(t, r.mustRun(t, "expense", "rm", id), "Removed.")
	_, err := r.run("expense", "rm", id)
	assert.Equal(t, "nothing found with this id", Explain(err))
	assert.Contains(t, r.mustRun(t, "expense", "list"), "No expenses found.")
}

func Test_OnInvalidInput_ShouldShowValidationMessage(t *testing.T) {
	r := newRunner()
	r.mustRun(t, "login", "demo@example.com", "password123")

	_, err := r.run("expense", "add", "--", "Food", "-5")
	require.Error(t, err)
	assert.Equal(t, "Amount must be a positive number", Explain(err))

	_, err = r.run("budget", "add", "Food", "10", "--period", "hourly")
	require.Error(t, err)
	assert.Equal(t, "Period must be daily, weekly, monthly or yearly", Explain(err))

	_, err = r.run("goal", "fund", "abc", "10")
	require.Error(t, err)
	assert.Contains(t, Explain(err), "not a valid id")
}

func Test_OnBudgetGoalAndDashboard_ShouldSummarize(t *testing.T) {
	r := newRunner()
	r.mustRun(t, "signup", "--name", "Alice", "--email", "alice@x.com", "--password", "longpass1", "--confirm", "longpass1")
	assert.Contains(t, r.mustRun(t, "whoami"), "Alice <alice@x.com>")

	r.mustRun(t, "budget", "add", "Food", "100")
	r.mustRun(t, "expense", "add", "Food", "70")
	r.mustRun(t, "goal", "add", "Emergency Fund", "1000", "--current", "100")

	budgets := r.mustRun(t, "budget", "list")
	assert.Contains(t, budgets, "monthly")
	assert.Contains(t, budgets, "70.0%")
	assert.Contains(t, budgets, "warning")

	goals := r.mustRun(t, "goal", "list")
	id := strings.Fields(goals)[0]
	funded := r.mustRun(t, "goal", "fund", id, "150")
	assert.Contains(t, funded, "25.0%")

	dashboard := r.mustRun(t, "dashboard")
	assert.Contains(t, dashboard, "Balance:          "+currency.Format(30, "LKR"))
	assert.Contains(t, dashboard, "Emergency Fund")

	report := r.mustRun(t, "report", "--period", "month")
	assert.Contains(t, report, "Food")
	assert.Contains(t, report, "Total")
	assert.Contains(t, report, "Highest: Food")

	profile := r.mustRun(t, "profile")
	assert.Contains(t, profile, "Expenses: 1")
	assert.Contains(t, profile, "Goals:    1")

	assert.Contains(t, r.mustRun(t, "logout"), "Logged out.")
	_, err := r.run("dashboard")
	assert.Contains(t, Explain(err), "not logged in")
}

func Test_OnCategories_ShouldListDefaults(t *testing.T) {
	r := newRunner()

	out := r.mustRun(t, "expense", "categories")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Personal Care")

	help := r.mustRun(t, "expense", "add", "--help")
	assert.Contains(t, help, "Dining Out")
}
