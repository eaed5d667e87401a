package mock

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gojuno/minimock/v3"
	"max.ks1230/finance-tracker/internal/entity/finance"
)

// ExpensesSourceMock implements the expensesSource consumed by reports.Generator.
type ExpensesSourceMock struct {
	t minimock.Tester

	funcExpenses         func(ctx context.Context) ([]finance.Expense, error)
	inspectFuncExpenses  func(ctx context.Context)
	afterExpensesCounter uint64
	ExpensesMock         mExpensesSourceMockExpenses
}

func NewExpensesSourceMock(t minimock.Tester) *ExpensesSourceMock {
	m := &ExpensesSourceMock{t: t}
	if controller, ok := t.(minimock.MockController); ok {
		controller.RegisterMocker(m)
	}

	m.ExpensesMock = mExpensesSourceMockExpenses{mock: m}
	return m
}

type mExpensesSourceMockExpenses struct {
	mock *ExpensesSourceMock
}

// Inspect accepts an inspector function called before every Expenses.
func (mmExpenses *mExpensesSourceMockExpenses) Inspect(f func(ctx context.Context)) *mExpensesSourceMockExpenses {
	mmExpenses.mock.inspectFuncExpenses = f
	return mmExpenses
}

// Return sets up the results of Expenses.
func (mmExpenses *mExpensesSourceMockExpenses) Return(exps []finance.Expense, err error) *ExpensesSourceMock {
	mmExpenses.mock.funcExpenses = func(context.Context) ([]finance.Expense, error) {
		return exps, err
	}
	return mmExpenses.mock
}

func (mmExpenses *ExpensesSourceMock) Expenses(ctx context.Context) ([]finance.Expense, error) {
	defer atomic.AddUint64(&mmExpenses.afterExpensesCounter, 1)

	if mmExpenses.inspectFuncExpenses != nil {
		mmExpenses.inspectFuncExpenses(ctx)
	}
	if mmExpenses.funcExpenses == nil {
		mmExpenses.t.Fatalf("Unexpected call to ExpensesSourceMock.Expenses.")
		return nil, nil
	}
	return mmExpenses.funcExpenses(ctx)
}

// ExpensesAfterCounter returns the count of finished Expenses invocations.
func (mmExpenses *ExpensesSourceMock) ExpensesAfterCounter() uint64 {
	return atomic.LoadUint64(&mmExpenses.afterExpensesCounter)
}

// MinimockFinish checks that every mocked method was called.
func (m *ExpensesSourceMock) MinimockFinish() {
	if m.funcExpenses != nil && m.ExpensesAfterCounter() == 0 {
		m.t.Error("Expected call to ExpensesSourceMock.Expenses")
	}
}

// MinimockWait waits for all mocked methods to be called the expected number of times.
func (m *ExpensesSourceMock) MinimockWait(timeout time.Duration) {
	timeoutCh := time.After(timeout)
	for {
		if m.funcExpenses == nil || m.ExpensesAfterCounter() > 0 {
			return
		}
		select {
		case <-timeoutCh:
			m.MinimockFinish()
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}
