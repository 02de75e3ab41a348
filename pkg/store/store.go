// Package store persists built de Bruijn graphs.
//
// Two backends are provided: MemoryStore for tests and single-process
// deployments, and MongoStore for durable shared storage. Both expose
// the same Store interface so the HTTP API is backend-agnostic.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested graph does not exist.
var ErrNotFound = errors.New("graph not found")

// StoredGraph is the persisted form of a built graph.
// The adjacency mapping is the authoritative payload; K, Nodes, and
// Edges are denormalized for cheap listing.
type StoredGraph struct {
	ID        string              `json:"id" bson:"_id"`
	Name      string              `json:"name,omitempty" bson:"name,omitempty"`
	K         int                 `json:"k" bson:"k"`
	Nodes     int                 `json:"nodes" bson:"nodes"`
	Edges     int                 `json:"edges" bson:"edges"`
	Adjacency map[string][]string `json:"adjacency" bson:"adjacency"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}

// Store persists and retrieves graphs.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists a graph. Saving an existing ID overwrites it.
	Save(ctx context.Context, g *StoredGraph) error

	// Get returns the graph with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*StoredGraph, error)

	// List returns all stored graphs, newest first.
	List(ctx context.Context) ([]StoredGraph, error)

	// Delete removes the graph with the given ID, or returns
	// ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}
