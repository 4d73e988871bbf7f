package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials MongoDB and verifies the connection with a ping. The returned
// client is a process-wide singleton: main constructs it once at startup and
// injects it into everything that needs a collection. It is held for the
// process lifetime, no teardown beyond process exit.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

func OpenCollection(client *mongo.Client, dbName, collectionName string) *mongo.Collection {
	return client.Database(dbName).Collection(collectionName)
}

// EnsureUserIndexes enforces email uniqueness at the storage layer.
func EnsureUserIndexes(ctx context.Context, users *mongo.Collection) error {
	unique := true
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: &options.IndexOptions{Unique: &unique},
	})
	return err
}

// EnsureCarIndexes creates the full-text index consumed by client-side search
// over titles, descriptions and tag fields.
func EnsureCarIndexes(ctx context.Context, cars *mongo.Collection) error {
	_, err := cars.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "tags.car_type", Value: "text"},
			{Key: "tags.company", Value: "text"},
			{Key: "tags.dealer", Value: "text"},
		},
	})
	return err
}
