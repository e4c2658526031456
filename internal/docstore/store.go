// Package docstore defines the document store the loaning core reads and writes
// through: named collections of string-keyed documents, equality queries and a
// per-collection change feed.
package docstore

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sort"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=docstore

// IDField holds the document identifier on every document returned by a Store.
const IDField = "id"

var (
	ErrNotFound        = errors.New("document not found")
	ErrEmptyCollection = errors.New("collection name must not be empty")
	ErrEmptyID         = errors.New("document id must not be empty")
)

// Document is a single stored record.
type Document map[string]any

// Filter is a conjunction of field equality predicates. A nil value matches a
// field that is absent or null.
type Filter map[string]any

// ChangeHandler receives the current state of a changed document.
type ChangeHandler func(doc Document)

type Store interface {
	// Get returns (nil, nil) when the document does not exist.
	Get(ctx context.Context, collection, id string) (Document, error)
	Query(ctx context.Context, collection string, filter Filter) ([]Document, error)
	Set(ctx context.Context, collection, id string, doc Document) error
	// Update merges fields into an existing document, ErrNotFound otherwise.
	Update(ctx context.Context, collection, id string, fields Document) error
	Delete(ctx context.Context, collection, id string) error
	// Subscribe delivers changes of the collection to onChange from a dedicated
	// goroutine until ctx is done.
	Subscribe(ctx context.Context, collection string, onChange ChangeHandler) error
}

func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

func (d Document) Bool(field string) (bool, bool) {
	b, ok := d[field].(bool)
	return b, ok
}

// Int accepts every numeric representation the backends decode into.
func (d Document) Int(field string) (int, bool) {
	switch v := d[field].(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// Clone returns a shallow copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Matches reports whether doc satisfies every predicate of filter.
func Matches(doc Document, filter Filter) bool {
	for field, want := range filter {
		got, ok := doc[field]
		if want == nil {
			if ok && got != nil {
				return false
			}
			continue
		}
		if !ok || !ValuesEqual(got, want) {
			return false
		}
	}
	return true
}

// ValuesEqual compares scalar document values, treating all numeric kinds alike.
func ValuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// SortByID orders documents by identifier so that query results are stable.
func SortByID(docs []Document) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].String(IDField) < docs[j].String(IDField)
	})
}

// ValidateKey checks the collection and id of a single-document operation.
func ValidateKey(collection, id string) error {
	if collection == "" {
		return ErrEmptyCollection
	}
	if id == "" {
		return ErrEmptyID
	}
	return nil
}
