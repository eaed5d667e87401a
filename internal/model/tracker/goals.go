package tracker

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/calc"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/records"
)

type GoalProgress struct {
	Goal     finance.Goal
	Progress float64
}

func NewGoalProgress(g finance.Goal) GoalProgress {
	return GoalProgress{Goal: g, Progress: calc.ProgressPercent(g.CurrentAmount, g.TargetAmount)}
}

func (s *Service) AddGoal(ctx context.Context, g finance.Goal) (finance.Goal, error) {
	if err := s.authorize(ctx); err != nil {
		return finance.Goal{}, err
	}

	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return finance.Goal{}, customerr.Invalid("name", "Goal name is required")
	}
	if !positive(g.TargetAmount) {
		return finance.Goal{}, customerr.Invalid("targetAmount", "Target amount must be a positive number")
	}
	if g.CurrentAmount < 0 {
		return finance.Goal{}, customerr.Invalid("currentAmount", "Current amount cannot be negative")
	}
	g.ID = 0

	stored, err := insert(ctx, s.store, records.Goals, g)
	return stored, errors.Wrap(err, "add goal")
}

func (s *Service) Goals(ctx context.Context) ([]finance.Goal, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	res, err := list[finance.Goal](ctx, s.store, records.Goals)
	return res, errors.Wrap(err, "list goals")
}

func (s *Service) DeleteGoal(ctx context.Context, id int64) (bool, error) {
	if err := s.authorize(ctx); err != nil {
		return false, err
	}
	removed, err := s.store.Remove(ctx, records.Goals, id)
	return removed, errors.Wrap(err, "delete goal")
}

// AddFunds increases the saved amount of a goal. ok is false for an unknown id.
func (s *Service) AddFunds(ctx context.Context, id int64, amount float64) (finance.Goal, bool, error) {
	if err := s.authorize(ctx); err != nil {
		return finance.Goal{}, false, err
	}
	if !positive(amount) {
		return finance.Goal{}, false, customerr.Invalid("amount", "Amount must be a positive number")
	}

	updated, ok, err := s.store.Apply(ctx, records.Goals, id, func(rec records.Record) (records.Record, error) {
		rec["currentAmount"] = calc.Add(rec.Float("currentAmount"), amount)
		return rec, nil
	})
	if err != nil || !ok {
		return finance.Goal{}, ok, errors.Wrap(err, "add funds")
	}

	var g finance.Goal
	err = records.Decode(updated, &g)
	return g, true, errors.Wrap(err, "add funds")
}

// PrimaryGoal is the first emergency fund, else the first goal.
func (s *Service) PrimaryGoal(ctx context.Context) (finance.Goal, bool, error) {
	goals, err := s.Goals(ctx)
	if err != nil {
		return finance.Goal{}, false, err
	}
	g, ok := primaryGoal(goals)
	return g, ok, nil
}

func primaryGoal(goals []finance.Goal) (finance.Goal, bool) {
	for _, g := range goals {
		if g.IsEmergencyFund() {
			return g, true
		}
	}
	if len(goals) > 0 {
		return goals[0], true
	}
	return finance.Goal{}, false
}
