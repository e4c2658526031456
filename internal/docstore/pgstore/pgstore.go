// Package pgstore keeps every collection in one jsonb table of PostgreSQL.
// Writes fire a trigger that notifies the document_changes channel, which
// backs the change feed.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"github.com/GlebRadaev/bookcounter/internal/pg"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

//go:generate mockgen -source=pgstore.go -destination=pgstore_mock.go -package=pgstore

const (
	ChangesChannel = "document_changes"

	table         = "documents"
	colCollection = "collection"
	colID         = "id"
	colBody       = "body"
	colUpdatedAt  = "updated_at"
)

const reconnectInterval = time.Second

// Sorted keys keep generated statements and their arguments stable.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

var dialect = goqu.Dialect("postgres")

type Listener interface {
	Listen(ctx context.Context, channel string) (pg.Subscription, error)
}

type Store struct {
	db       pg.Database
	listener Listener
}

func New(db pg.Database, listener Listener) *Store {
	return &Store{db: db, listener: listener}
}

type change struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

func byKey(collection, id string) exp.Expression {
	return goqu.And(goqu.C(colCollection).Eq(collection), goqu.C(colID).Eq(id))
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return nil, err
	}

	query, args, err := dialect.From(table).Prepared(true).
		Select(colBody).
		Where(byKey(collection, id)).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var body []byte
	err = s.db.QueryRow(ctx, query, args...).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get document", zap.String("collection", collection), zap.Error(err))
		return nil, err
	}
	return decode(id, body)
}

func (s *Store) Query(ctx context.Context, collection string, filter docstore.Filter) ([]docstore.Document, error) {
	if collection == "" {
		return nil, docstore.ErrEmptyCollection
	}

	where, err := filterExpression(collection, filter)
	if err != nil {
		return nil, err
	}
	query, args, err := dialect.From(table).Prepared(true).
		Select(colID, colBody).
		Where(where).
		Order(goqu.C(colID).Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't query documents", zap.String("collection", collection), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			zap.L().Error("can't scan document row", zap.Error(err))
			return nil, err
		}
		doc, err := decode(id, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// filterExpression turns equality predicates into jsonb containment. A nil
// value matches when the field is absent or null.
func filterExpression(collection string, filter docstore.Filter) (exp.Expression, error) {
	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	exprs := []exp.Expression{goqu.C(colCollection).Eq(collection)}
	contained := map[string]any{}
	for _, field := range fields {
		value := filter[field]
		switch {
		case field == docstore.IDField:
			exprs = append(exprs, goqu.C(colID).Eq(fmt.Sprint(value)))
		case value == nil:
			exprs = append(exprs, goqu.L("COALESCE(body -> ?, 'null'::jsonb) = 'null'::jsonb", field))
		default:
			contained[field] = value
		}
	}
	if len(contained) > 0 {
		raw, err := json.Marshal(contained)
		if err != nil {
			return nil, fmt.Errorf("failed to encode filter: %w", err)
		}
		exprs = append(exprs, goqu.L("body @> ?::jsonb", string(raw)))
	}
	return goqu.And(exprs...), nil
}

func (s *Store) Set(ctx context.Context, collection, id string, doc docstore.Document) error {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return err
	}

	body, err := encode(doc)
	if err != nil {
		return err
	}
	query, args, err := dialect.Insert(table).Prepared(true).
		Rows(goqu.Record{colCollection: collection, colID: id, colBody: body}).
		OnConflict(goqu.DoUpdate(colCollection+", "+colID, goqu.Record{
			colBody:      goqu.L("EXCLUDED.body"),
			colUpdatedAt: goqu.L("now()"),
		})).
		ToSQL()
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		zap.L().Error("can't set document", zap.String("collection", collection), zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return err
	}

	patch, err := encode(fields)
	if err != nil {
		return err
	}
	query, args, err := dialect.Update(table).Prepared(true).
		Set(goqu.Record{
			colBody:      goqu.L("body || ?::jsonb", patch),
			colUpdatedAt: goqu.L("now()"),
		}).
		Where(byKey(collection, id)).
		ToSQL()
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to update document", zap.String("collection", collection), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return err
	}

	query, args, err := dialect.Delete(table).Prepared(true).
		Where(byKey(collection, id)).
		ToSQL()
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		zap.L().Error("can't delete document", zap.String("collection", collection), zap.Error(err))
		return err
	}
	return nil
}

// Subscribe listens for change notifications and delivers the current state of
// each changed document of collection. A dropped session is reopened.
func (s *Store) Subscribe(ctx context.Context, collection string, onChange docstore.ChangeHandler) error {
	if collection == "" {
		return docstore.ErrEmptyCollection
	}

	sub, err := s.listener.Listen(ctx, ChangesChannel)
	if err != nil {
		return err
	}

	go func() {
		limiter := rate.NewLimiter(rate.Every(reconnectInterval), 1)
		for {
			err := s.follow(ctx, sub, collection, onChange)
			sub.Close()
			if ctx.Err() != nil {
				return
			}
			zap.L().Warn("change notifications interrupted", zap.String("collection", collection), zap.Error(err))

			for {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				sub, err = s.listener.Listen(ctx, ChangesChannel)
				if err == nil {
					break
				}
				zap.L().Error("failed to listen for changes", zap.Error(err))
			}
		}
	}()
	return nil
}

func (s *Store) follow(ctx context.Context, sub pg.Subscription, collection string, onChange docstore.ChangeHandler) error {
	for {
		n, err := sub.Next(ctx)
		if err != nil {
			return err
		}
		s.handleNotification(ctx, collection, n.Payload, onChange)
	}
}

func (s *Store) handleNotification(ctx context.Context, collection, payload string, onChange docstore.ChangeHandler) {
	var c change
	if err := json.UnmarshalFromString(payload, &c); err != nil {
		zap.L().Error("malformed change notification", zap.String("payload", payload), zap.Error(err))
		return
	}
	if c.Collection != collection {
		return
	}

	doc, err := s.Get(ctx, c.Collection, c.ID)
	if err != nil || doc == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("change handler panicked", zap.Any("panic", r), zap.String("id", c.ID))
		}
	}()
	onChange(doc)
}

func encode(doc docstore.Document) (string, error) {
	stored := docstore.Document{}
	for k, v := range doc {
		if k == docstore.IDField {
			continue
		}
		stored[k] = v
	}
	raw, err := json.MarshalToString(stored)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return raw, nil
}

func decode(id string, body []byte) (docstore.Document, error) {
	doc := docstore.Document{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	doc[docstore.IDField] = id
	return doc, nil
}
