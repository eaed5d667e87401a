package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/calc"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/tracker"
	"max.ks1230/finance-tracker/internal/model/workspace"
)

type messageSender interface {
	SendMessage(text string, userID int64) error
}

type workspaces interface {
	Each(fn func(chatID int64, ws *workspace.Workspace))
}

type config interface {
	AlertIntervalMinutes() int64
}

// Watcher tells chats when a budget with notifications enabled moves into
// warning or critical. Each level is reported once until it changes.
type Watcher struct {
	workspaces workspaces
	sender     messageSender
	delay      time.Duration

	mu   sync.Mutex
	last map[int64]map[int64]calc.Status
}

func NewWatcher(workspaces workspaces, sender messageSender, cfg config) *Watcher {
	return &Watcher{
		workspaces: workspaces,
		sender:     sender,
		delay:      time.Duration(cfg.AlertIntervalMinutes()) * time.Minute,
		last:       make(map[int64]map[int64]calc.Status),
	}
}

func (w *Watcher) Watch(ctx context.Context) {
	if w.delay <= 0 {
		logger.Info("Budget alerts disabled")
		return
	}

	ticker := time.NewTicker(w.delay)
	defer ticker.Stop()
	firstTick := make(chan struct{}, 1)
	firstTick <- struct{}{}

	logger.Info("Start watching budgets")
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stop watching budgets")
			return
		// fake first tick to check right away
		case <-firstTick:
			w.CheckOnce(ctx)
		case <-ticker.C:
			w.CheckOnce(ctx)
		}
	}
}

func (w *Watcher) CheckOnce(ctx context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "checkBudgets")
	defer span.Finish()

	w.workspaces.Each(func(chatID int64, ws *workspace.Workspace) {
		if err := w.check(ctx, chatID, ws); err != nil {
			ext.Error.Set(span, true)
			logger.Error("failed to check budgets", zap.Int64("chat", chatID), zap.Error(err))
		}
	})
}

func (w *Watcher) check(ctx context.Context, chatID int64, ws *workspace.Workspace) error {
	overview, err := ws.Tracker.BudgetOverview(ctx)
	if errors.Is(err, customerr.ErrNotLoggedIn) {
		return nil
	}
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	seen, ok := w.last[chatID]
	if !ok {
		seen = make(map[int64]calc.Status)
		w.last[chatID] = seen
	}
	current := make(map[int64]calc.Status, len(overview.Budgets))
	for _, b := range overview.Budgets {
		if !b.Budget.Notifications {
			continue
		}
		current[b.Budget.ID] = b.Status
		if b.Status == calc.StatusOK || seen[b.Budget.ID] == b.Status {
			continue
		}
		if err = w.sender.SendMessage(alertText(b, ws.Currency), chatID); err != nil {
			return errors.Wrap(err, "send alert")
		}
	}
	w.last[chatID] = current
	return nil
}

func alertText(b tracker.BudgetProgress, code string) string {
	return fmt.Sprintf("⚠️ Budget %s is at %.0f%% (%s): spent %s of %s",
		b.Budget.Category, b.Progress, b.Status,
		currency.Format(b.Spent, code), currency.Format(b.Budget.Amount, code))
}
