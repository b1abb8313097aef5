package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// preferenceDoc is one stored preference, keyed by its name.
type preferenceDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// MongoStore provides Mongo-backed persistence for preferences.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

var _ PreferenceStore = (*MongoStore)(nil)

// NewMongoStore returns a MongoStore that operates on the "preferences" collection
// of db. The store takes ownership of client.
func NewMongoStore(client *mongo.Client, db string) *MongoStore {
	return &MongoStore{
		client: client,
		col:    client.Database(db).Collection("preferences"),
	}
}

// Load returns ErrNotFound when the document does not exist.
func (r *MongoStore) Load(ctx context.Context, key string) (string, error) {
	var doc preferenceDoc
	err := r.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return doc.Value, nil
}

// Save inserts or replaces the document with the same _id.
func (r *MongoStore) Save(ctx context.Context, key, value string) error {
	_, err := r.col.ReplaceOne(
		ctx,
		bson.M{"_id": key},
		preferenceDoc{Key: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (r *MongoStore) Ping(ctx context.Context) error { return r.client.Ping(ctx, nil) }

func (r *MongoStore) Close() error { return r.client.Disconnect(context.Background()) }
