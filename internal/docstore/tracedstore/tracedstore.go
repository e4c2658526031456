// Package tracedstore records a span for every call made to a docstore.Store.
package tracedstore

import (
	"context"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "bookcounter/docstore"

type Store struct {
	next   docstore.Store
	tracer trace.Tracer
}

func New(next docstore.Store, tracer trace.Tracer) *Store {
	return &Store{next: next, tracer: tracer}
}

func (s *Store) start(ctx context.Context, op, collection string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("docstore.collection", collection))
	return s.tracer.Start(ctx, "docstore."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	ctx, span := s.start(ctx, "get", collection, attribute.String("docstore.id", id))
	doc, err := s.next.Get(ctx, collection, id)
	span.SetAttributes(attribute.Bool("docstore.found", doc != nil))
	finish(span, err)
	return doc, err
}

func (s *Store) Query(ctx context.Context, collection string, filter docstore.Filter) ([]docstore.Document, error) {
	ctx, span := s.start(ctx, "query", collection, attribute.Int("docstore.filter.fields", len(filter)))
	docs, err := s.next.Query(ctx, collection, filter)
	span.SetAttributes(attribute.Int("docstore.results", len(docs)))
	finish(span, err)
	return docs, err
}

func (s *Store) Set(ctx context.Context, collection, id string, doc docstore.Document) error {
	ctx, span := s.start(ctx, "set", collection, attribute.String("docstore.id", id))
	err := s.next.Set(ctx, collection, id, doc)
	finish(span, err)
	return err
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	ctx, span := s.start(ctx, "update", collection, attribute.String("docstore.id", id))
	err := s.next.Update(ctx, collection, id, fields)
	finish(span, err)
	return err
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	ctx, span := s.start(ctx, "delete", collection, attribute.String("docstore.id", id))
	err := s.next.Delete(ctx, collection, id)
	finish(span, err)
	return err
}

// Subscribe traces opening the feed only. Deliveries run outside any span.
func (s *Store) Subscribe(ctx context.Context, collection string, onChange docstore.ChangeHandler) error {
	_, span := s.start(ctx, "subscribe", collection)
	err := s.next.Subscribe(ctx, collection, onChange)
	finish(span, err)
	return err
}
