// Package mongostore backs docstore collections with MongoDB collections. The
// document identifier is kept in _id and change feeds ride on change streams,
// which require a replica set.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/bookcounter/internal/docstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const mongoIDField = "_id"

// reconnectInterval bounds how often a broken change stream is reopened.
const reconnectInterval = time.Second

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Connect opens a client for uri and checks that the server answers.
func Connect(ctx context.Context, uri, database string) (*Store, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return New(client.Database(database)), client.Disconnect, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return nil, err
	}

	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{mongoIDField: id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return fromBSON(raw), nil
}

func (s *Store) Query(ctx context.Context, collection string, filter docstore.Filter) ([]docstore.Document, error) {
	if collection == "" {
		return nil, docstore.ErrEmptyCollection
	}

	cursor, err := s.db.Collection(collection).Find(ctx, toFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []docstore.Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", collection, err)
		}
		docs = append(docs, fromBSON(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	docstore.SortByID(docs)
	return docs, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, doc docstore.Document) error {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return err
	}

	_, err := s.db.Collection(collection).ReplaceOne(ctx,
		bson.M{mongoIDField: id},
		toBSON(doc),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return err
	}

	set := toBSON(fields)
	if len(set) == 0 {
		// $set rejects an empty document.
		doc, err := s.Get(ctx, collection, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return docstore.ErrNotFound
		}
		return nil
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{mongoIDField: id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := docstore.ValidateKey(collection, id); err != nil {
		return err
	}

	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{mongoIDField: id}); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Subscribe opens a change stream over inserts, updates and replacements. A
// broken stream is resumed after its last seen event.
func (s *Store) Subscribe(ctx context.Context, collection string, onChange docstore.ChangeHandler) error {
	if collection == "" {
		return docstore.ErrEmptyCollection
	}

	coll := s.db.Collection(collection)
	stream, err := watch(ctx, coll, nil)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", collection, err)
	}

	go func() {
		limiter := rate.NewLimiter(rate.Every(reconnectInterval), 1)
		for {
			follow(ctx, stream, onChange)
			token := stream.ResumeToken()
			if err := stream.Err(); err != nil && ctx.Err() == nil {
				zap.L().Warn("change stream interrupted", zap.String("collection", collection), zap.Error(err))
			}
			_ = stream.Close(context.WithoutCancel(ctx))

			for {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				stream, err = watch(ctx, coll, token)
				if err == nil {
					break
				}
				zap.L().Error("failed to reopen change stream", zap.String("collection", collection), zap.Error(err))
			}
		}
	}()
	return nil
}

func watch(ctx context.Context, coll *mongo.Collection, resumeAfter bson.Raw) (*mongo.ChangeStream, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"operationType": bson.M{"$in": bson.A{"insert", "update", "replace"}}}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	if resumeAfter != nil {
		opts.SetResumeAfter(resumeAfter)
	}
	return coll.Watch(ctx, pipeline, opts)
}

func follow(ctx context.Context, stream *mongo.ChangeStream, onChange docstore.ChangeHandler) {
	for stream.Next(ctx) {
		doc, ok := decodeChange(stream.Current)
		if !ok {
			continue
		}
		deliver(onChange, doc)
	}
}

func deliver(onChange docstore.ChangeHandler, doc docstore.Document) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("change handler panicked", zap.Any("panic", r), zap.String("id", doc.String(docstore.IDField)))
		}
	}()
	onChange(doc)
}

// decodeChange extracts the post-image of a change event. Updates of documents
// deleted before the lookup carry no full document and are skipped.
func decodeChange(raw bson.Raw) (docstore.Document, bool) {
	var event struct {
		FullDocument bson.M `bson:"fullDocument"`
	}
	if err := bson.Unmarshal(raw, &event); err != nil {
		zap.L().Error("failed to decode change event", zap.Error(err))
		return nil, false
	}
	if event.FullDocument == nil {
		return nil, false
	}
	return fromBSON(event.FullDocument), true
}

func toFilter(filter docstore.Filter) bson.M {
	out := bson.M{}
	for field, value := range filter {
		if field == docstore.IDField {
			field = mongoIDField
		}
		// A null equality also matches a missing field.
		out[field] = value
	}
	return out
}

func toBSON(doc docstore.Document) bson.M {
	out := bson.M{}
	for k, v := range doc {
		if k == docstore.IDField || k == mongoIDField {
			continue
		}
		out[k] = v
	}
	return out
}

func fromBSON(raw bson.M) docstore.Document {
	doc := make(docstore.Document, len(raw))
	for k, v := range raw {
		if k == mongoIDField {
			doc[docstore.IDField] = fmt.Sprint(v)
			continue
		}
		doc[k] = v
	}
	return doc
}
