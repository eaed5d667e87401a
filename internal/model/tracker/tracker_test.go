package tracker

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/calc"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/records"
	"max.ks1230/finance-tracker/internal/model/session"
	"max.ks1230/finance-tracker/internal/model/storage"
)

type testConfig struct {
	scoped bool
}

func (testConfig) DemoCredentials() (string, string) {
	return "demo@example.com", "password123"
}

func (c testConfig) ScopeBudgetsToPeriod() bool {
	return c.scoped
}

func (testConfig) RecentLimit() int {
	return 3
}

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

func newTestService(t *testing.T, cfg testConfig) (*Service, *storage.InMemStorage) {
	t.Helper()
	medium := storage.NewInMemStorage()
	clock := func() time.Time { return testNow }
	store := records.New(medium, records.WithClock(clock))
	sess := session.New(medium)

	_, ok, err := session.NewAuth(store, sess, cfg).Login(context.Background(), "demo@example.com", "password123")
	require.NoError(t, err)
	require.True(t, ok)

	return New(store, sess, cfg, WithClock(clock)), medium
}

func day(y int, m time.Month, d int) finance.Date {
	return finance.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.Local))
}

func Test_OnLoggedOut_ShouldRefuseEveryCall(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewInMemStorage()
	svc := New(records.New(medium), session.New(medium), testConfig{})

	_, err := svc.AddExpense(ctx, finance.Expense{Amount: 5, Category: "Food"})
	assert.ErrorIs(t, err, customerr.ErrNotLoggedIn)
	_, err = svc.Budgets(ctx)
	assert.ErrorIs(t, err, customerr.ErrNotLoggedIn)
	_, err = svc.Dashboard(ctx)
	assert.ErrorIs(t, err, customerr.ErrNotLoggedIn)
	assert.Empty(t, medium.Keys())
}

func Test_OnAddExpense_ShouldAssignIdentityAndDefaultDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	e, err := svc.AddExpense(ctx, finance.Expense{Amount: 12.5, Category: " Groceries ", Description: "milk"})
	require.NoError(t, err)
	assert.NotZero(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
	assert.Equal(t, "Groceries", e.Category)
	assert.Equal(t, "2024-03-15", e.Date.String())

	got, err := svc.Expense(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, 12.5, got.Amount)
}

func Test_OnInvalidExpense_ShouldNotWrite(t *testing.T) {
	ctx := context.Background()
	svc, medium := newTestService(t, testConfig{})

	for _, e := range []finance.Expense{
		{Amount: 0, Category: "Food"},
		{Amount: -3, Category: "Food"},
		{Amount: 3, Category: "  "},
	} {
		_, err := svc.AddExpense(ctx, e)
		assert.True(t, customerr.IsValidation(err))
	}
	_, ok, _ := medium.Read(ctx, records.Expenses)
	assert.False(t, ok)
}

func Test_OnEditExpense_ShouldMergeChangedFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	e, err := svc.AddExpense(ctx, finance.Expense{Amount: 10, Category: "Food", Description: "lunch", Date: day(2024, time.March, 1)})
	require.NoError(t, err)

	amount := 14.0
	edited, ok, err := svc.EditExpense(ctx, e.ID, finance.ExpensePatch{Amount: &amount})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 14.0, edited.Amount)
	assert.Equal(t, "lunch", edited.Description)
	assert.Equal(t, e.ID, edited.ID)
	assert.True(t, e.CreatedAt.Equal(edited.CreatedAt))

	_, ok, err = svc.EditExpense(ctx, e.ID+1000, finance.ExpensePatch{Amount: &amount})
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Expense(ctx, e.ID+1000)
	assert.ErrorIs(t, err, customerr.ErrNotFound)
}

func Test_OnDeleteExpense_ShouldUpdateTotal(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	a, err := svc.AddExpense(ctx, finance.Expense{Amount: 0.1, Category: "Food"})
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, finance.Expense{Amount: 0.2, Category: "Food"})
	require.NoError(t, err)

	total, err := svc.TotalExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.3, total)

	removed, err := svc.DeleteExpense(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	total, err = svc.TotalExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.2, total)
}

func Test_OnBudgetOverview_ShouldJoinExpensesByCategory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	_, err := svc.AddBudget(ctx, finance.Budget{Category: "Food", Amount: 100, Period: "Monthly"})
	require.NoError(t, err)
	_, err = svc.AddBudget(ctx, finance.Budget{Category: "Fun", Amount: 50})
	require.NoError(t, err)

	for _, e := range []finance.Expense{
		{Amount: 70, Category: "Food"},
		{Amount: 20, Category: "Food"},
		{Amount: 10, Category: "Fun"},
		{Amount: 99, Category: "food"},
	} {
		_, err = svc.AddExpense(ctx, e)
		require.NoError(t, err)
	}

	overview, err := svc.BudgetOverview(ctx)
	require.NoError(t, err)
	require.Len(t, overview.Budgets, 2)

	byCategory := map[string]BudgetProgress{}
	for _, b := range overview.Budgets {
		byCategory[b.Budget.Category] = b
	}
	food := byCategory["Food"]
	assert.Equal(t, 90.0, food.Spent)
	assert.Equal(t, 10.0, food.Remaining)
	assert.Equal(t, 90.0, food.Progress)
	assert.Equal(t, calc.StatusCritical, food.Status)
	assert.Equal(t, finance.Monthly, food.Budget.Period)

	fun := byCategory["Fun"]
	assert.Equal(t, 10.0, fun.Spent)
	assert.Equal(t, calc.StatusOK, fun.Status)

	assert.Equal(t, 150.0, overview.TotalBudget)
	assert.Equal(t, 100.0, overview.TotalSpent)
	assert.Equal(t, 50.0, overview.TotalRemaining)
}

func Test_OnFoodBudget_ShouldDeriveSpentRemainingAndProgress(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	for _, e := range []finance.Expense{
		{Amount: 10, Category: "Food"},
		{Amount: 5, Category: "Food"},
		{Amount: 100, Category: "Rent"},
	} {
		_, err := svc.AddExpense(ctx, e)
		require.NoError(t, err)
	}
	_, err := svc.AddBudget(ctx, finance.Budget{Category: "Food", Amount: 20})
	require.NoError(t, err)

	overview, err := svc.BudgetOverview(ctx)
	require.NoError(t, err)
	require.Len(t, overview.Budgets, 1)
	food := overview.Budgets[0]
	assert.Equal(t, 15.0, food.Spent)
	assert.Equal(t, 5.0, food.Remaining)
	assert.Equal(t, 75.0, food.Progress)
	assert.Equal(t, calc.StatusWarning, food.Status)
}

func Test_OnHugeAmounts_ShouldNotPanic(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	_, err := svc.AddBudget(ctx, finance.Budget{Category: "Food", Amount: 100})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = svc.AddExpense(ctx, finance.Expense{Amount: 1e308, Category: "Food"})
		require.NoError(t, err)
	}

	var overview BudgetOverview
	require.NotPanics(t, func() { overview, err = svc.BudgetOverview(ctx) })
	require.NoError(t, err)
	food := overview.Budgets[0]
	assert.Equal(t, math.MaxFloat64, food.Spent)
	assert.False(t, math.IsInf(food.Remaining, 0))
	assert.Equal(t, calc.StatusCritical, food.Status)

	var d Dashboard
	require.NotPanics(t, func() { d, err = svc.Dashboard(ctx) })
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Balance)

	require.NotPanics(t, func() { _, err = svc.TotalExpenses(ctx) })
	assert.NoError(t, err)
}

func Test_OnNonFiniteStoredAmount_ShouldReadAsZero(t *testing.T) {
	ctx := context.Background()
	svc, medium := newTestService(t, testConfig{})
	require.NoError(t, medium.Write(ctx, records.Expenses,
		`[{"id":1,"amount":"NaN","category":"Food"},{"id":2,"amount":4,"category":"Food"}]`))

	var total float64
	var err error
	require.NotPanics(t, func() { total, err = svc.TotalExpenses(ctx) })
	require.NoError(t, err)
	assert.Equal(t, 4.0, total)

	totals, err := svc.CategoryTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, []CategoryTotal{{Category: "Food", Total: 4}}, totals)
}

func Test_OnCategoryTotals_ShouldRankHighestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	totals, err := svc.CategoryTotals(ctx)
	require.NoError(t, err)
	assert.Empty(t, totals)

	for _, e := range []finance.Expense{
		{Amount: 10, Category: "Food"},
		{Amount: 30, Category: "Rent"},
		{Amount: 25, Category: "Food"},
		{Amount: 30, Category: "Fun"},
	} {
		_, err = svc.AddExpense(ctx, e)
		require.NoError(t, err)
	}

	totals, err = svc.CategoryTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, []CategoryTotal{
		{Category: "Food", Total: 35},
		{Category: "Fun", Total: 30},
		{Category: "Rent", Total: 30},
	}, totals)
}

func Test_OnPeriodScopedBudgets_ShouldIgnoreOlderExpenses(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{scoped: true})

	_, err := svc.AddBudget(ctx, finance.Budget{Category: "Food", Amount: 100, Period: finance.Monthly})
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, finance.Expense{Amount: 40, Category: "Food", Date: day(2024, time.February, 20)})
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, finance.Expense{Amount: 30, Category: "Food", Date: day(2024, time.March, 2)})
	require.NoError(t, err)

	overview, err := svc.BudgetOverview(ctx)
	require.NoError(t, err)
	require.Len(t, overview.Budgets, 1)
	assert.Equal(t, 30.0, overview.Budgets[0].Spent)
}

func Test_OnInvalidBudget_ShouldFailValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	_, err := svc.AddBudget(ctx, finance.Budget{Category: "Food", Amount: 10, Period: "hourly"})
	assert.True(t, customerr.IsValidation(err))
	_, err = svc.AddBudget(ctx, finance.Budget{Category: "", Amount: 10})
	assert.True(t, customerr.IsValidation(err))
	_, err = svc.AddBudget(ctx, finance.Budget{Category: "Food", Amount: 0})
	assert.True(t, customerr.IsValidation(err))
}

func Test_OnAddFunds_ShouldAccumulate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	g, err := svc.AddGoal(ctx, finance.Goal{Name: "Car", TargetAmount: 1000, CurrentAmount: 100})
	require.NoError(t, err)

	g, ok, err := svc.AddFunds(ctx, g.ID, 150)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 250.0, g.CurrentAmount)
	assert.Equal(t, 25.0, NewGoalProgress(g).Progress)

	_, ok, err = svc.AddFunds(ctx, g.ID+1, 10)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = svc.AddFunds(ctx, g.ID, -1)
	assert.True(t, customerr.IsValidation(err))
}

func Test_OnPrimaryGoal_ShouldPreferEmergencyFund(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	_, ok, err := svc.PrimaryGoal(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.AddGoal(ctx, finance.Goal{Name: "Emergency Fund", TargetAmount: 500})
	require.NoError(t, err)
	_, err = svc.AddGoal(ctx, finance.Goal{Name: "Vacation", TargetAmount: 900})
	require.NoError(t, err)

	g, ok, err := svc.PrimaryGoal(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Emergency Fund", g.Name)
}

func Test_OnDashboard_ShouldSummarizeCurrentMonth(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	_, err := svc.AddBudget(ctx, finance.Budget{Category: "Food", Amount: 200})
	require.NoError(t, err)
	for _, e := range []finance.Expense{
		{Amount: 500, Category: "Rent", Date: day(2024, time.February, 28)},
		{Amount: 20, Category: "Food", Date: day(2024, time.March, 1)},
		{Amount: 30, Category: "Food", Date: day(2024, time.March, 10)},
		{Amount: 40, Category: "Food", Date: day(2024, time.March, 14)},
	} {
		_, err = svc.AddExpense(ctx, e)
		require.NoError(t, err)
	}
	_, err = svc.AddGoal(ctx, finance.Goal{Name: "Laptop", TargetAmount: 100, CurrentAmount: 40})
	require.NoError(t, err)

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90.0, d.MonthlyExpenses)
	assert.Equal(t, 200.0, d.MonthlyIncome)
	assert.Equal(t, 110.0, d.Balance)
	require.Len(t, d.RecentExpenses, 3)
	assert.Equal(t, 40.0, d.RecentExpenses[0].Amount)
	require.NotNil(t, d.PrimaryGoal)
	assert.Equal(t, 40.0, d.PrimaryGoal.Progress)
}

func Test_OnOverspentDashboard_ShouldNotShowNegativeBalance(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	_, err := svc.AddExpense(ctx, finance.Expense{Amount: 30, Category: "Food"})
	require.NoError(t, err)

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Zero(t, d.Balance)
	assert.Nil(t, d.PrimaryGoal)
}

func Test_OnProfile_ShouldCountRecords(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testConfig{})

	_, err := svc.AddExpense(ctx, finance.Expense{Amount: 1, Category: "A"})
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, finance.Expense{Amount: 2, Category: "B"})
	require.NoError(t, err)
	_, err = svc.AddGoal(ctx, finance.Goal{Name: "G", TargetAmount: 5})
	require.NoError(t, err)

	p, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Demo User", p.User.Name)
	assert.Equal(t, 2, p.Expenses)
	assert.Equal(t, 0, p.Budgets)
	assert.Equal(t, 1, p.Goals)
}
