// Package memstore keeps collections in process memory. It is the default
// backend and the one the tests of the loaning core run against.
package memstore

import (
	"context"
	"sync"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"go.uber.org/zap"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]docstore.Document
	subs        map[string][]*subscriber
}

func New() *Store {
	return &Store{
		collections: make(map[string]map[string]docstore.Document),
		subs:        make(map[string][]*subscriber),
	}
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return withID(doc, id), nil
}

func (s *Store) Query(ctx context.Context, collection string, filter docstore.Filter) ([]docstore.Document, error) {
	if collection == "" {
		return nil, docstore.ErrEmptyCollection
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []docstore.Document
	for id, doc := range s.collections[collection] {
		candidate := withID(doc, id)
		if docstore.Matches(candidate, filter) {
			docs = append(docs, candidate)
		}
	}
	docstore.SortByID(docs)
	return docs, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, doc docstore.Document) error {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := doc.Clone()
	if stored == nil {
		stored = docstore.Document{}
	}
	delete(stored, docstore.IDField)

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]docstore.Document)
		s.collections[collection] = docs
	}
	docs[id] = stored
	s.publish(collection, withID(stored, id))
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.collections[collection][id]
	if !ok {
		return docstore.ErrNotFound
	}
	merged := current.Clone()
	for k, v := range fields {
		if k == docstore.IDField {
			continue
		}
		merged[k] = v
	}
	s.collections[collection][id] = merged
	s.publish(collection, withID(merged, id))
	return nil
}

// Delete removes the document. Removals are not published to subscribers.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func (s *Store) Subscribe(ctx context.Context, collection string, onChange docstore.ChangeHandler) error {
	if collection == "" {
		return docstore.ErrEmptyCollection
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sub := newSubscriber(ctx, onChange)

	s.mu.Lock()
	s.subs[collection] = append(s.subs[collection], sub)
	s.mu.Unlock()

	go func() {
		sub.run()
		s.unsubscribe(collection, sub)
	}()
	return nil
}

// publish is called with s.mu held so that every subscriber sees the changes
// of a collection in write order.
func (s *Store) publish(collection string, doc docstore.Document) {
	for _, sub := range s.subs[collection] {
		sub.push(doc.Clone())
	}
}

func (s *Store) unsubscribe(collection string, sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subs[collection]
	for i, candidate := range subs {
		if candidate == sub {
			s.subs[collection] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func withID(doc docstore.Document, id string) docstore.Document {
	out := doc.Clone()
	if out == nil {
		out = docstore.Document{}
	}
	out[docstore.IDField] = id
	return out
}

// subscriber owns an unbounded queue so that publishing never blocks a writer
// on a slow handler.
type subscriber struct {
	ctx      context.Context
	onChange docstore.ChangeHandler

	mu      sync.Mutex
	cond    *sync.Cond
	pending []docstore.Document
}

func newSubscriber(ctx context.Context, onChange docstore.ChangeHandler) *subscriber {
	sub := &subscriber{ctx: ctx, onChange: onChange}
	sub.cond = sync.NewCond(&sub.mu)
	context.AfterFunc(ctx, func() {
		sub.mu.Lock()
		defer sub.mu.Unlock()
		sub.cond.Broadcast()
	})
	return sub
}

func (s *subscriber) push(doc docstore.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, doc)
	s.cond.Signal()
}

func (s *subscriber) next() (docstore.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.pending) == 0 && s.ctx.Err() == nil {
		s.cond.Wait()
	}
	if s.ctx.Err() != nil {
		return nil, false
	}
	doc := s.pending[0]
	s.pending[0] = nil
	s.pending = s.pending[1:]
	return doc, true
}

func (s *subscriber) run() {
	for {
		doc, ok := s.next()
		if !ok {
			return
		}
		s.deliver(doc)
	}
}

func (s *subscriber) deliver(doc docstore.Document) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("change handler panicked", zap.Any("panic", r), zap.String("id", doc.String(docstore.IDField)))
		}
	}()
	s.onChange(doc)
}
