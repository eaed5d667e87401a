package tracker

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/calc"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/records"
)

func validateExpense(e *finance.Expense) error {
	e.Category = strings.TrimSpace(e.Category)
	e.Description = strings.TrimSpace(e.Description)
	if !positive(e.Amount) {
		return customerr.Invalid("amount", "Amount must be a positive number")
	}
	if e.Category == "" {
		return customerr.Invalid("category", "Category is required")
	}
	return nil
}

// AddExpense stores a new expense, dated today unless a date is given.
func (s *Service) AddExpense(ctx context.Context, e finance.Expense) (finance.Expense, error) {
	if err := s.authorize(ctx); err != nil {
		return finance.Expense{}, err
	}
	if err := validateExpense(&e); err != nil {
		return finance.Expense{}, err
	}
	if e.Date.IsZero() {
		e.Date = finance.NewDate(s.clock())
	}
	e.ID = 0

	stored, err := insert(ctx, s.store, records.Expenses, e)
	return stored, errors.Wrap(err, "add expense")
}

func (s *Service) Expenses(ctx context.Context) ([]finance.Expense, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	res, err := list[finance.Expense](ctx, s.store, records.Expenses)
	return res, errors.Wrap(err, "list expenses")
}

// Expense returns customerr.ErrNotFound for an unknown id.
func (s *Service) Expense(ctx context.Context, id int64) (finance.Expense, error) {
	if err := s.authorize(ctx); err != nil {
		return finance.Expense{}, err
	}
	rec, ok, err := s.store.Get(ctx, records.Expenses, id)
	if err != nil {
		return finance.Expense{}, errors.Wrap(err, "get expense")
	}
	if !ok {
		return finance.Expense{}, customerr.ErrNotFound
	}
	var e finance.Expense
	err = records.Decode(rec, &e)
	return e, errors.Wrap(err, "get expense")
}

// EditExpense applies the changed fields. ok is false when the id is unknown.
func (s *Service) EditExpense(ctx context.Context, id int64, patch finance.ExpensePatch) (finance.Expense, bool, error) {
	if err := s.authorize(ctx); err != nil {
		return finance.Expense{}, false, err
	}
	if patch.Amount != nil && !positive(*patch.Amount) {
		return finance.Expense{}, false, customerr.Invalid("amount", "Amount must be a positive number")
	}
	if patch.Category != nil {
		c := strings.TrimSpace(*patch.Category)
		if c == "" {
			return finance.Expense{}, false, customerr.Invalid("category", "Category is required")
		}
		patch.Category = &c
	}

	rec, err := records.Encode(patch)
	if err != nil {
		return finance.Expense{}, false, errors.Wrap(err, "edit expense")
	}
	merged, ok, err := s.store.Update(ctx, records.Expenses, id, rec)
	if err != nil || !ok {
		return finance.Expense{}, ok, errors.Wrap(err, "edit expense")
	}

	var e finance.Expense
	err = records.Decode(merged, &e)
	return e, true, errors.Wrap(err, "edit expense")
}

func (s *Service) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	if err := s.authorize(ctx); err != nil {
		return false, err
	}
	removed, err := s.store.Remove(ctx, records.Expenses, id)
	return removed, errors.Wrap(err, "delete expense")
}

func (s *Service) TotalExpenses(ctx context.Context) (float64, error) {
	if err := s.authorize(ctx); err != nil {
		return 0, err
	}
	total, err := records.Aggregate(ctx, s.store, records.Expenses, nil, 0.0, sumAmount)
	return total, errors.Wrap(err, "total expenses")
}

type CategoryTotal struct {
	Category string
	Total    float64
}

// CategoryTotals sums all expenses per category, highest first. Ties are
// ordered by category name.
func (s *Service) CategoryTotals(ctx context.Context) ([]CategoryTotal, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	sums, err := records.Aggregate(ctx, s.store, records.Expenses, nil, map[string]float64{},
		func(acc map[string]float64, r records.Record) map[string]float64 {
			c := r.String("category")
			acc[c] = calc.Add(acc[c], r.Float("amount"))
			return acc
		})
	if err != nil {
		return nil, errors.Wrap(err, "category totals")
	}

	res := make([]CategoryTotal, 0, len(sums))
	for c, total := range sums {
		res = append(res, CategoryTotal{Category: c, Total: total})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Total != res[j].Total {
			return res[i].Total > res[j].Total
		}
		return res[i].Category < res[j].Category
	})
	return res, nil
}

func sumAmount(acc float64, r records.Record) float64 {
	return calc.Add(acc, r.Float("amount"))
}
