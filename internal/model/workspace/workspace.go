package workspace

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/records"
	"max.ks1230/finance-tracker/internal/model/reports"
	"max.ks1230/finance-tracker/internal/model/session"
	"max.ks1230/finance-tracker/internal/model/storage"
	"max.ks1230/finance-tracker/internal/model/tracker"
)

type config interface {
	BaseCurrency() string
	DemoCredentials() (email, password string)
	ScopeBudgetsToPeriod() bool
	RecentLimit() int
}

type notifiers interface {
	For(workspace string) records.Notifier
}

// Workspace is everything one user sees: their session, their records and
// the reports over them.
type Workspace struct {
	Name     string
	Currency string
	Auth     *session.Auth
	Tracker  *tracker.Service
	Reports  *reports.Generator
}

func New(medium storage.Medium, name string, cfg config, notifier records.Notifier) *Workspace {
	var opts []records.Option
	if notifier != nil {
		opts = append(opts, records.WithNotifier(notifier))
	}
	store := records.New(medium, opts...)
	sess := session.New(medium)
	svc := tracker.New(store, sess, cfg)

	return &Workspace{
		Name:     name,
		Currency: cfg.BaseCurrency(),
		Auth:     session.NewAuth(store, sess, cfg),
		Tracker:  svc,
		Reports:  reports.NewGenerator(cfg, svc),
	}
}

// chatsKey lists every chat that ever got a workspace, so a restarted
// process can find them again. Chat keys all start with "chat:".
const chatsKey = "chats"

// Pool hands out one workspace per chat over a shared medium. Keys of a
// chat are prefixed with its name so chats never see each other's data.
type Pool struct {
	medium    storage.Medium
	cfg       config
	notifiers notifiers

	mu    sync.Mutex
	items map[int64]*Workspace
}

type PoolOption func(*Pool)

func WithNotifiers(n notifiers) PoolOption {
	return func(p *Pool) {
		p.notifiers = n
	}
}

func NewPool(medium storage.Medium, cfg config, opts ...PoolOption) *Pool {
	p := &Pool{
		medium: medium,
		cfg:    cfg,
		items:  make(map[int64]*Workspace),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pool) For(chatID int64) *Workspace {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ws, ok := p.items[chatID]; ok {
		return ws
	}
	ws := p.open(chatID)
	if err := p.saveChats(context.Background()); err != nil {
		logger.Error("failed to remember chat", zap.Int64("chat", chatID), zap.Error(err))
	}
	return ws
}

// Restore reopens the workspaces of chats remembered by an earlier run.
func (p *Pool) Restore(ctx context.Context) error {
	raw, ok, err := p.medium.Read(ctx, chatsKey)
	if err != nil {
		return errors.Wrap(err, "read chats")
	}
	if !ok {
		return nil
	}
	var ids []int64
	if err = json.Unmarshal([]byte(raw), &ids); err != nil {
		logger.Warn("malformed chat list, starting empty", zap.Error(err))
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range ids {
		if _, ok := p.items[id]; !ok {
			p.open(id)
		}
	}
	logger.Info("restored chats", zap.Int("count", len(ids)))
	return nil
}

func (p *Pool) saveChats(ctx context.Context) error {
	ids := make([]int64, 0, len(p.items))
	for id := range p.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	raw, err := json.Marshal(ids)
	if err != nil {
		return errors.Wrap(err, "encode chats")
	}
	return errors.Wrap(p.medium.Write(ctx, chatsKey, string(raw)), "write chats")
}

func (p *Pool) open(chatID int64) *Workspace {
	name := "chat:" + strconv.FormatInt(chatID, 10)
	var notifier records.Notifier
	if p.notifiers != nil {
		notifier = p.notifiers.For(name)
	}
	ws := New(storage.Prefixed(p.medium, name+":"), name, p.cfg, notifier)
	p.items[chatID] = ws
	return ws
}

// Each calls fn for every workspace handed out or restored, ordered by chat id.
func (p *Pool) Each(fn func(chatID int64, ws *Workspace)) {
	p.mu.Lock()
	ids := make([]int64, 0, len(p.items))
	for id := range p.items {
		ids = append(ids, id)
	}
	items := make(map[int64]*Workspace, len(p.items))
	for id, ws := range p.items {
		items[id] = ws
	}
	p.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn(id, items[id])
	}
}
