package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// mongoConnectTimeout bounds the initial connect and ping.
	mongoConnectTimeout = 10 * time.Second

	// mongoCollection is the collection holding stored graphs.
	mongoCollection = "graphs"
)

// MongoStore persists graphs in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and verifies the connection
// with a ping. Graphs are stored in the "graphs" collection of db.
func NewMongoStore(ctx context.Context, uri, db string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(mongoCollection),
	}, nil
}

// Save persists a graph, overwriting any existing document with the same ID.
func (s *MongoStore) Save(ctx context.Context, g *StoredGraph) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": g.ID}, g, opts); err != nil {
		return fmt.Errorf("save graph %s: %w", g.ID, err)
	}
	return nil
}

// Get returns the graph with the given ID, or ErrNotFound.
func (s *MongoStore) Get(ctx context.Context, id string) (*StoredGraph, error) {
	var g StoredGraph
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get graph %s: %w", id, err)
	}
	return &g, nil
}

// List returns all stored graphs, newest first.
func (s *MongoStore) List(ctx context.Context) ([]StoredGraph, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}

	var out []StoredGraph
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode graphs: %w", err)
	}
	return out, nil
}

// Delete removes the graph with the given ID, or returns ErrNotFound.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete graph %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping verifies the MongoDB connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
