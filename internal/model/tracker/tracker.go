package tracker

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/user"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/records"
)

type guard interface {
	Require(ctx context.Context) (user.Profile, error)
}

type config interface {
	ScopeBudgetsToPeriod() bool
	RecentLimit() int
}

// Service is the typed face of the record store used by every view.
// Each call is gated by the session guard.
type Service struct {
	store        *records.Store
	guard        guard
	clock        func() time.Time
	scopeBudgets bool
	recentLimit  int
}

type Option func(*Service)

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func New(store *records.Store, guard guard, cfg config, opts ...Option) *Service {
	s := &Service{
		store:        store,
		guard:        guard,
		clock:        time.Now,
		scopeBudgets: cfg.ScopeBudgetsToPeriod(),
		recentLimit:  cfg.RecentLimit(),
	}
	if s.recentLimit <= 0 {
		s.recentLimit = 3
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) authorize(ctx context.Context) error {
	_, err := s.guard.Require(ctx)
	return err
}

// Profile sums up what the current user keeps.
type Profile struct {
	User     user.Profile
	Expenses int
	Budgets  int
	Goals    int
}

func (s *Service) Profile(ctx context.Context) (Profile, error) {
	u, err := s.guard.Require(ctx)
	if err != nil {
		return Profile{}, err
	}

	res := Profile{User: u}
	counts := []struct {
		collection string
		dst        *int
	}{
		{records.Expenses, &res.Expenses},
		{records.Budgets, &res.Budgets},
		{records.Goals, &res.Goals},
	}
	for _, c := range counts {
		n, err := records.Aggregate(ctx, s.store, c.collection, nil, 0,
			func(acc int, _ records.Record) int { return acc + 1 })
		if err != nil {
			return Profile{}, errors.Wrap(err, "profile")
		}
		*c.dst = n
	}
	return res, nil
}

func list[T any](ctx context.Context, store *records.Store, collection string) ([]T, error) {
	recs, err := store.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	res := make([]T, 0, len(recs))
	for _, rec := range recs {
		var v T
		if err = records.Decode(rec, &v); err != nil {
			logger.Warn("skip malformed record", zap.String("collection", collection), zap.Error(err))
			continue
		}
		res = append(res, v)
	}
	return res, nil
}

func insert[T any](ctx context.Context, store *records.Store, collection string, v T) (T, error) {
	var res T
	rec, err := records.Encode(v)
	if err != nil {
		return res, errors.Wrap(err, "encode record")
	}
	stored, err := store.Insert(ctx, collection, rec)
	if err != nil {
		return res, err
	}
	err = records.Decode(stored, &res)
	return res, errors.Wrap(err, "decode record")
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
