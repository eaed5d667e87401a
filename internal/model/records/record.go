package records

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
)

// Collection names double as keys of the persistence medium.
const (
	Expenses = "expenses"
	Budgets  = "budgets"
	Goals    = "goals"
	Users    = "users"
)

const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is one JSON object of a collection. Numbers read back from the
// medium are json.Number.
type Record map[string]any

// ID returns the record identifier if it holds an integral value.
func (r Record) ID() (int64, bool) {
	return toInt(r[FieldID])
}

func (r Record) CreatedAt() (time.Time, bool) {
	s, ok := r[FieldCreatedAt].(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Float returns a numeric field, 0 when absent, not a number or not finite.
func (r Record) Float(field string) float64 {
	var f float64
	switch v := r[field].(type) {
	case json.Number:
		f, _ = v.Float64()
	case float64:
		f = v
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case string:
		f, _ = strconv.ParseFloat(v, 64)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

func (r Record) hasID(id int64) bool {
	got, ok := r.ID()
	return ok && got == id
}

func toInt(v any) (int64, bool) {
	switch id := v.(type) {
	case json.Number:
		if i, err := id.Int64(); err == nil {
			return i, true
		}
		f, err := id.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	case int64:
		return id, true
	case int:
		return int64(id), true
	case float64:
		if id != math.Trunc(id) {
			return 0, false
		}
		return int64(id), true
	case string:
		i, err := strconv.ParseInt(id, 10, 64)
		return i, err == nil
	}
	return 0, false
}

// Decode fills a typed value from a record.
func Decode(rec Record, v any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Encode turns a typed value into a record. Zero id and createdAt are
// dropped so Insert assigns them.
func Encode(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rec Record
	if err = dec.Decode(&rec); err != nil {
		return nil, err
	}

	if id, ok := rec.ID(); ok && id == 0 {
		delete(rec, FieldID)
	}
	if t, ok := rec.CreatedAt(); ok && t.IsZero() {
		delete(rec, FieldCreatedAt)
	}
	return rec, nil
}
