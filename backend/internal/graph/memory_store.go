package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tidwall/btree"
	"go.uber.org/zap"

	"socialgraph/backend/internal/constants"
)

// MemoryStore is an in-process Store. Writers are serialized by a single
// RWMutex and readers see a consistent snapshot. A failed write transaction
// is rolled back by replaying its undo log.
type MemoryStore struct {
	mu     sync.RWMutex
	nodes  map[Label]*btree.Map[string, map[string]any]
	edges  map[Edge]struct{}
	adj    map[NodeRef]map[Edge]struct{}
	logger *zap.Logger
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &MemoryStore{
		nodes:  make(map[Label]*btree.Map[string, map[string]any], len(Labels)),
		edges:  make(map[Edge]struct{}),
		adj:    make(map[NodeRef]map[Edge]struct{}),
		logger: logger,
	}
	for _, l := range Labels {
		s.nodes[l] = &btree.Map[string, map[string]any]{}
	}
	return s
}

// ReadTx runs fn under the read lock
func (s *MemoryStore) ReadTx(ctx context.Context, fn TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(ctx, &memoryTx{store: s})
}

// WriteTx runs fn under the write lock and rolls back on error or panic
func (s *MemoryStore) WriteTx(ctx context.Context, fn TxFunc) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s, writable: true}
	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			panic(p)
		}
		if err != nil {
			tx.rollback()
			s.logger.Debug("Memory transaction rolled back",
				zap.Int("undo_steps", len(tx.undo)),
				zap.Error(err),
			)
		}
	}()

	return fn(ctx, tx)
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// ============================================================================
// Transaction
// ============================================================================

type memoryTx struct {
	store    *MemoryStore
	writable bool
	undo     []func()
}

func (tx *memoryTx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

func (tx *memoryTx) checkWritable() error {
	if !tx.writable {
		return ErrReadOnly
	}
	return nil
}

func (tx *memoryTx) index(label Label) (*btree.Map[string, map[string]any], error) {
	if err := label.Validate(); err != nil {
		return nil, err
	}
	return tx.store.nodes[label], nil
}

func (tx *memoryTx) CreateNode(ctx context.Context, node Node) error {
	if err := tx.checkWritable(); err != nil {
		return err
	}
	idx, err := tx.index(node.Label)
	if err != nil {
		return err
	}
	if node.ID == "" {
		return fmt.Errorf("node id is required")
	}
	if _, exists := idx.Get(node.ID); exists {
		return fmt.Errorf("node %s already exists", node.Ref())
	}

	props := copyProps(node.Props)
	props[constants.PropID] = node.ID
	idx.Set(node.ID, props)
	tx.undo = append(tx.undo, func() { idx.Delete(node.ID) })
	return nil
}

func (tx *memoryTx) GetNode(ctx context.Context, label Label, id string) (*Node, error) {
	idx, err := tx.index(label)
	if err != nil {
		return nil, err
	}
	props, ok := idx.Get(id)
	if !ok {
		return nil, ErrNodeNotFound
	}
	return &Node{Label: label, ID: id, Props: copyProps(props)}, nil
}

func (tx *memoryTx) UpdateNode(ctx context.Context, label Label, id string, props map[string]any) error {
	if err := tx.checkWritable(); err != nil {
		return err
	}
	idx, err := tx.index(label)
	if err != nil {
		return err
	}
	current, ok := idx.Get(id)
	if !ok {
		return ErrNodeNotFound
	}

	updated := copyProps(current)
	for k, v := range props {
		if k == constants.PropID {
			continue
		}
		updated[k] = v
	}
	idx.Set(id, updated)
	tx.undo = append(tx.undo, func() { idx.Set(id, current) })
	return nil
}

func (tx *memoryTx) DeleteNode(ctx context.Context, label Label, id string) error {
	if err := tx.checkWritable(); err != nil {
		return err
	}
	idx, err := tx.index(label)
	if err != nil {
		return err
	}
	props, ok := idx.Get(id)
	if !ok {
		return nil
	}

	ref := Ref(label, id)
	for e := range tx.store.adj[ref] {
		tx.removeEdge(e)
	}
	idx.Delete(id)
	tx.undo = append(tx.undo, func() { idx.Set(id, props) })
	return nil
}

func (tx *memoryTx) ListNodes(ctx context.Context, label Label) ([]Node, error) {
	idx, err := tx.index(label)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, idx.Len())
	idx.Scan(func(id string, props map[string]any) bool {
		nodes = append(nodes, Node{Label: label, ID: id, Props: copyProps(props)})
		return true
	})
	return nodes, nil
}

func (tx *memoryTx) UpsertEdge(ctx context.Context, edge Edge) error {
	if err := tx.checkWritable(); err != nil {
		return err
	}
	if err := edge.Validate(); err != nil {
		return err
	}
	if !tx.exists(edge.From) || !tx.exists(edge.To) {
		return ErrNodeNotFound
	}

	e := edge.Canonical()
	if _, ok := tx.store.edges[e]; ok {
		return nil
	}
	tx.addEdge(e)
	return nil
}

func (tx *memoryTx) DeleteEdge(ctx context.Context, edge Edge) error {
	if err := tx.checkWritable(); err != nil {
		return err
	}
	if err := edge.Validate(); err != nil {
		return err
	}
	e := edge.Canonical()
	if _, ok := tx.store.edges[e]; ok {
		tx.removeEdge(e)
	}
	return nil
}

func (tx *memoryTx) HasEdge(ctx context.Context, edge Edge) (bool, error) {
	if err := edge.Validate(); err != nil {
		return false, err
	}
	_, ok := tx.store.edges[edge.Canonical()]
	return ok, nil
}

func (tx *memoryTx) Neighbors(ctx context.Context, ref NodeRef, rel RelType, dir Direction, neighborLabel Label) ([]Node, error) {
	if err := rel.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[NodeRef]struct{})
	for e := range tx.store.adj[ref] {
		if e.Type != rel {
			continue
		}
		var other NodeRef
		switch {
		case e.Undirected || dir == Both:
			other = e.To
			if e.To == ref {
				other = e.From
			}
		case dir == Outgoing && e.From == ref:
			other = e.To
		case dir == Incoming && e.To == ref:
			other = e.From
		default:
			continue
		}
		if neighborLabel != "" && other.Label != neighborLabel {
			continue
		}
		seen[other] = struct{}{}
	}

	nodes := make([]Node, 0, len(seen))
	for other := range seen {
		props, ok := tx.store.nodes[other.Label].Get(other.ID)
		if !ok {
			continue
		}
		nodes = append(nodes, Node{Label: other.Label, ID: other.ID, Props: copyProps(props)})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes, nil
}

func (tx *memoryTx) exists(ref NodeRef) bool {
	idx, ok := tx.store.nodes[ref.Label]
	if !ok {
		return false
	}
	_, found := idx.Get(ref.ID)
	return found
}

// addEdge and removeEdge keep edges and adj in step and log their inverse

func (tx *memoryTx) addEdge(e Edge) {
	s := tx.store
	s.edges[e] = struct{}{}
	tx.link(e.From, e)
	tx.link(e.To, e)
	tx.undo = append(tx.undo, func() {
		delete(s.edges, e)
		tx.unlink(e.From, e)
		tx.unlink(e.To, e)
	})
}

func (tx *memoryTx) removeEdge(e Edge) {
	s := tx.store
	delete(s.edges, e)
	tx.unlink(e.From, e)
	tx.unlink(e.To, e)
	tx.undo = append(tx.undo, func() {
		s.edges[e] = struct{}{}
		tx.link(e.From, e)
		tx.link(e.To, e)
	})
}

func (tx *memoryTx) link(ref NodeRef, e Edge) {
	set, ok := tx.store.adj[ref]
	if !ok {
		set = make(map[Edge]struct{})
		tx.store.adj[ref] = set
	}
	set[e] = struct{}{}
}

func (tx *memoryTx) unlink(ref NodeRef, e Edge) {
	set, ok := tx.store.adj[ref]
	if !ok {
		return
	}
	delete(set, e)
	if len(set) == 0 {
		delete(tx.store.adj, ref)
	}
}
