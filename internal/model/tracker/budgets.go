package tracker

import (
	"context"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/calc"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/records"
)

type BudgetProgress struct {
	Budget    finance.Budget
	Spent     float64
	Remaining float64
	Progress  float64
	Status    calc.Status
}

type BudgetOverview struct {
	Budgets        []BudgetProgress
	TotalBudget    float64
	TotalSpent     float64
	TotalRemaining float64
	Progress       float64
}

// AddBudget stores a budget. Several budgets may share a category.
func (s *Service) AddBudget(ctx context.Context, b finance.Budget) (finance.Budget, error) {
	if err := s.authorize(ctx); err != nil {
		return finance.Budget{}, err
	}

	b.Category = strings.TrimSpace(b.Category)
	if b.Category == "" {
		return finance.Budget{}, customerr.Invalid("category", "Category is required")
	}
	if !positive(b.Amount) {
		return finance.Budget{}, customerr.Invalid("amount", "Amount must be a positive number")
	}
	period, ok := finance.ParsePeriod(string(b.Period))
	if !ok {
		return finance.Budget{}, customerr.Invalid("period", "Period must be daily, weekly, monthly or yearly")
	}
	b.Period = period
	b.ID = 0

	stored, err := insert(ctx, s.store, records.Budgets, b)
	return stored, errors.Wrap(err, "add budget")
}

func (s *Service) Budgets(ctx context.Context) ([]finance.Budget, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	res, err := list[finance.Budget](ctx, s.store, records.Budgets)
	return res, errors.Wrap(err, "list budgets")
}

func (s *Service) DeleteBudget(ctx context.Context, id int64) (bool, error) {
	if err := s.authorize(ctx); err != nil {
		return false, err
	}
	removed, err := s.store.Remove(ctx, records.Budgets, id)
	return removed, errors.Wrap(err, "delete budget")
}

// BudgetOverview joins budgets with the expenses of their category.
// Spending counts for all time unless budgets are scoped to their period.
func (s *Service) BudgetOverview(ctx context.Context) (BudgetOverview, error) {
	budgets, err := s.Budgets(ctx)
	if err != nil {
		return BudgetOverview{}, err
	}
	expenses, err := s.Expenses(ctx)
	if err != nil {
		return BudgetOverview{}, err
	}

	res := BudgetOverview{Budgets: make([]BudgetProgress, 0, len(budgets))}
	for _, b := range budgets {
		var since time.Time
		if s.scopeBudgets {
			since = PeriodStart(b.Period, s.clock())
		}

		spent := 0.0
		for _, e := range expenses {
			if e.Category == b.Category && !e.Date.Before(since) {
				spent = calc.Add(spent, e.Amount)
			}
		}

		progress := calc.ProgressPercent(spent, b.Amount)
		res.Budgets = append(res.Budgets, BudgetProgress{
			Budget:    b,
			Spent:     spent,
			Remaining: calc.Remaining(b.Amount, spent),
			Progress:  progress,
			Status:    calc.BudgetStatus(progress),
		})
		res.TotalBudget = calc.Add(res.TotalBudget, b.Amount)
		res.TotalSpent = calc.Add(res.TotalSpent, spent)
	}
	res.TotalRemaining = calc.Remaining(res.TotalBudget, res.TotalSpent)
	res.Progress = calc.ProgressPercent(res.TotalSpent, res.TotalBudget)
	return res, nil
}

// PeriodStart is the first instant of the period containing t.
func PeriodStart(p finance.Period, t time.Time) time.Time {
	n := now.With(t)
	switch p {
	case finance.Daily:
		return n.BeginningOfDay()
	case finance.Weekly:
		return n.BeginningOfWeek()
	case finance.Yearly:
		return n.BeginningOfYear()
	}
	return n.BeginningOfMonth()
}
