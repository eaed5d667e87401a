package records

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

//go:generate minimock -i medium -o ./mock/ -s _mock.go

type medium interface {
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key, value string) error
}

type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
)

// Change describes one mutation that reached the medium.
type Change struct {
	Collection string
	Op         Op
	RecordID   int64
	At         time.Time
}

type Notifier interface {
	Notify(ctx context.Context, change Change) error
}

// Store keeps each collection as one JSON array under the collection name.
// Every mutation reads, modifies and writes back the whole collection.
// Sequences of one Store are serialized; two processes writing the same
// medium follow last-writer-wins.
type Store struct {
	medium   medium
	mu       sync.Mutex
	clock    func() time.Time
	lastID   int64
	notifier Notifier
}

type Option func(*Store)

func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		s.notifier = n
	}
}

func New(m medium, opts ...Option) *Store {
	s := &Store{
		medium: m,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the records of a collection, newest first. An absent or
// malformed value reads as an empty collection.
func (s *Store) List(ctx context.Context, collection string) (recs []Record, err error) {
	ctx, done := s.track(ctx, "list", collection)
	defer func() { done(err) }()

	return s.load(ctx, collection)
}

// Insert assigns id and createdAt when absent, prepends the record and
// persists the collection. The stored record is returned only after the write succeeded.
func (s *Store) Insert(ctx context.Context, collection string, rec Record) (stored Record, err error) {
	ctx, done := s.track(ctx, "insert", collection)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load(ctx, collection)
	if err != nil {
		return nil, errors.Wrap(err, "insert record")
	}

	stored = rec.Clone()
	id, hasID := stored.ID()
	switch {
	case hasID:
		if _, dup := find(existing, id); dup {
			return nil, customerr.Invalid(FieldID, "id already exists")
		}
	default:
		id = s.nextID(existing)
		stored[FieldID] = id
	}
	if _, ok := stored.CreatedAt(); !ok {
		stored[FieldCreatedAt] = s.clock().UTC().Format(createdAtLayout)
	}

	updated := make([]Record, 0, len(existing)+1)
	updated = append(updated, stored)
	updated = append(updated, existing...)

	if err = s.save(ctx, collection, updated); err != nil {
		return nil, errors.Wrap(err, "insert record")
	}
	s.notify(ctx, collection, OpInsert, id)
	return stored.Clone(), nil
}

// Update merges patch over the first record with the given id. Fields set to
// nil in patch are left untouched, id and createdAt never change.
// ok is false, with no error and no write, when the id is absent.
func (s *Store) Update(ctx context.Context, collection string, id int64, patch Record) (merged Record, ok bool, err error) {
	ctx, done := s.track(ctx, "update", collection)
	defer func() { done(err) }()

	merged, ok, err = s.apply(ctx, collection, id, func(rec Record) (Record, error) {
		for k, v := range patch {
			if v != nil {
				rec[k] = v
			}
		}
		return rec, nil
	})
	return merged, ok, errors.Wrap(err, "update record")
}

// Apply replaces the record with the given id by fn's result within one
// read-modify-write sequence. fn gets a copy; an error from fn aborts
// without writing. id and createdAt are restored after fn.
func (s *Store) Apply(ctx context.Context, collection string, id int64, fn func(Record) (Record, error)) (updated Record, ok bool, err error) {
	ctx, done := s.track(ctx, "apply", collection)
	defer func() { done(err) }()

	updated, ok, err = s.apply(ctx, collection, id, fn)
	return updated, ok, errors.Wrap(err, "apply to record")
}

func (s *Store) apply(ctx context.Context, collection string, id int64, fn func(Record) (Record, error)) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load(ctx, collection)
	if err != nil {
		return nil, false, err
	}

	idx, found := find(existing, id)
	if !found {
		return nil, false, nil
	}

	original := existing[idx]
	changed, err := fn(original.Clone())
	if err != nil {
		return nil, false, err
	}
	if changed == nil {
		changed = Record{}
	}
	changed[FieldID] = original[FieldID]
	if createdAt, has := original[FieldCreatedAt]; has {
		changed[FieldCreatedAt] = createdAt
	} else {
		delete(changed, FieldCreatedAt)
	}

	updated := make([]Record, len(existing))
	copy(updated, existing)
	updated[idx] = changed

	if err = s.save(ctx, collection, updated); err != nil {
		return nil, false, err
	}
	s.notify(ctx, collection, OpUpdate, id)
	return changed.Clone(), true, nil
}

// Remove drops every record with the given id. Removing an absent id is a
// no-op and writes nothing.
func (s *Store) Remove(ctx context.Context, collection string, id int64) (removed bool, err error) {
	ctx, done := s.track(ctx, "remove", collection)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load(ctx, collection)
	if err != nil {
		return false, errors.Wrap(err, "remove record")
	}

	remaining := make([]Record, 0, len(existing))
	for _, rec := range existing {
		if !rec.hasID(id) {
			remaining = append(remaining, rec)
		}
	}
	if len(remaining) == len(existing) {
		return false, nil
	}

	if err = s.save(ctx, collection, remaining); err != nil {
		return false, errors.Wrap(err, "remove record")
	}
	s.notify(ctx, collection, OpRemove, id)
	return true, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, collection string, id int64) (Record, bool, error) {
	return s.Find(ctx, collection, func(r Record) bool { return r.hasID(id) })
}

// Find returns the first record matching the predicate.
func (s *Store) Find(ctx context.Context, collection string, match func(Record) bool) (Record, bool, error) {
	recs, err := s.List(ctx, collection)
	if err != nil {
		return nil, false, errors.Wrap(err, "find record")
	}
	for _, rec := range recs {
		if match(rec) {
			return rec, true, nil
		}
	}
	return nil, false, nil
}

// Aggregate folds the records of a collection matching the predicate.
// A nil predicate matches everything.
func Aggregate[A any](ctx context.Context, s *Store, collection string, match func(Record) bool, init A, fold func(A, Record) A) (A, error) {
	recs, err := s.List(ctx, collection)
	if err != nil {
		return init, errors.Wrap(err, "aggregate records")
	}
	acc := init
	for _, rec := range recs {
		if match == nil || match(rec) {
			acc = fold(acc, rec)
		}
	}
	return acc, nil
}

func (s *Store) load(ctx context.Context, collection string) ([]Record, error) {
	raw, ok, err := s.medium.Read(ctx, collection)
	if err != nil {
		return nil, errors.Wrap(err, "read collection")
	}
	if !ok {
		return []Record{}, nil
	}

	recs, err := decode(raw)
	if err != nil {
		logger.Warn("malformed collection, reading as empty",
			zap.String("collection", collection),
			zap.Error(err))
		return []Record{}, nil
	}
	return recs, nil
}

func decode(raw string) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewBufferString(raw))
	dec.UseNumber()

	var recs []Record
	if err := dec.Decode(&recs); err != nil {
		return nil, errors.Wrap(customerr.ErrMalformedData, err.Error())
	}
	if dec.More() {
		return nil, errors.Wrap(customerr.ErrMalformedData, "trailing data")
	}

	res := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if rec != nil {
			res = append(res, rec)
		}
	}
	return res, nil
}

func (s *Store) save(ctx context.Context, collection string, recs []Record) error {
	raw, err := json.Marshal(recs)
	if err != nil {
		return &customerr.WriteError{Key: collection, Err: err}
	}
	if err = s.medium.Write(ctx, collection, string(raw)); err != nil {
		return &customerr.WriteError{Key: collection, Err: err}
	}
	return nil
}

// nextID hands out the current time in milliseconds, moved forward until it
// is unique in the collection and above anything handed out before.
func (s *Store) nextID(existing []Record) int64 {
	id := s.clock().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}

	taken := make(map[int64]struct{}, len(existing))
	for _, rec := range existing {
		if v, ok := rec.ID(); ok {
			taken[v] = struct{}{}
		}
	}
	for {
		if _, ok := taken[id]; !ok {
			break
		}
		id++
	}

	s.lastID = id
	return id
}

func (s *Store) notify(ctx context.Context, collection string, op Op, id int64) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Notify(ctx, Change{
		Collection: collection,
		Op:         op,
		RecordID:   id,
		At:         s.clock(),
	})
	if err != nil {
		logger.Error("failed to publish change",
			zap.String("collection", collection),
			zap.String("op", string(op)),
			zap.Error(err))
	}
}

func (s *Store) track(ctx context.Context, op, collection string) (context.Context, func(error)) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "records."+op)
	span.SetTag("collection", collection)
	start := time.Now()

	return ctx, func(err error) {
		if err != nil {
			ext.Error.Set(span, true)
		}
		span.Finish()
		observeOperation(collection, op, time.Since(start), err)
	}
}

func find(recs []Record, id int64) (int, bool) {
	for i, rec := range recs {
		if rec.hasID(id) {
			return i, true
		}
	}
	return -1, false
}
