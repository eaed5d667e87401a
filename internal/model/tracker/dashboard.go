package tracker

import (
	"context"

	"github.com/jinzhu/now"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/calc"
)

type Dashboard struct {
	MonthlyIncome   float64
	MonthlyExpenses float64
	Balance         float64
	RecentExpenses  []finance.Expense
	PrimaryGoal     *GoalProgress
}

// Dashboard treats the sum of all budgets as the monthly income and never
// shows a negative balance.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	expenses, err := s.Expenses(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	budgets, err := s.Budgets(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	goals, err := s.Goals(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	var res Dashboard
	monthStart := now.With(s.clock()).BeginningOfMonth()
	for _, e := range expenses {
		if !e.Date.Before(monthStart) {
			res.MonthlyExpenses = calc.Add(res.MonthlyExpenses, e.Amount)
		}
	}
	for _, b := range budgets {
		res.MonthlyIncome = calc.Add(res.MonthlyIncome, b.Amount)
	}
	if balance := calc.Remaining(res.MonthlyIncome, res.MonthlyExpenses); balance > 0 {
		res.Balance = balance
	}

	recent := s.recentLimit
	if recent > len(expenses) {
		recent = len(expenses)
	}
	res.RecentExpenses = expenses[:recent]

	if g, ok := primaryGoal(goals); ok {
		p := NewGoalProgress(g)
		res.PrimaryGoal = &p
	}
	return res, nil
}
