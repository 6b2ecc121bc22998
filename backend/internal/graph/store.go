package graph

import (
	"context"
	"errors"
)

var (
	// ErrNodeNotFound is returned when a lookup, update or edge endpoint
	// references a node that does not exist
	ErrNodeNotFound = errors.New("node not found")

	// ErrReadOnly is returned when a read transaction attempts a mutation
	ErrReadOnly = errors.New("mutation in read-only transaction")
)

// Tx is the set of primitives available inside a store transaction. A Tx is
// only valid for the duration of the callback it was handed to and must not
// be shared between goroutines.
type Tx interface {
	// CreateNode inserts a new node. The node id must be unique.
	CreateNode(ctx context.Context, node Node) error

	// GetNode returns ErrNodeNotFound when no node matches
	GetNode(ctx context.Context, label Label, id string) (*Node, error)

	// UpdateNode merges props into an existing node's properties
	UpdateNode(ctx context.Context, label Label, id string, props map[string]any) error

	// DeleteNode removes the node and every relationship incident to it.
	// Deleting an absent node is a no-op.
	DeleteNode(ctx context.Context, label Label, id string) error

	// ListNodes returns every node with the given label
	ListNodes(ctx context.Context, label Label) ([]Node, error)

	// UpsertEdge creates the edge unless an equal one exists (same type and
	// endpoints; endpoint order ignored for undirected edges). Returns
	// ErrNodeNotFound if either endpoint is missing.
	UpsertEdge(ctx context.Context, edge Edge) error

	// DeleteEdge removes the edge if present
	DeleteEdge(ctx context.Context, edge Edge) error

	// HasEdge reports whether an equal edge exists
	HasEdge(ctx context.Context, edge Edge) (bool, error)

	// Neighbors returns the nodes adjacent to ref through edges of type rel,
	// optionally restricted to nodes labelled neighborLabel (empty means any)
	Neighbors(ctx context.Context, ref NodeRef, rel RelType, dir Direction, neighborLabel Label) ([]Node, error)
}

// TxFunc is the unit of work run inside a transaction
type TxFunc func(ctx context.Context, tx Tx) error

// Store is the entity store consumed by the social engine. WriteTx commits
// when fn returns nil and rolls back otherwise; no partial state is ever
// visible to other transactions.
type Store interface {
	ReadTx(ctx context.Context, fn TxFunc) error
	WriteTx(ctx context.Context, fn TxFunc) error
	Close(ctx context.Context) error
}
