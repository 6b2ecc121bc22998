// Package social implements the social graph engine: users, friendships,
// posts, comments and likes on top of a graph.Store. Every operation runs in
// a single store transaction, so composite writes (a comment with its two
// edges, a cascading delete) are never partially visible.
package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"socialgraph/backend/internal/graph"
	apperrors "socialgraph/backend/pkg/errors"
	"socialgraph/backend/pkg/metrics"
)

// Engine holds no mutable state of its own; all state lives in the store
type Engine struct {
	store  graph.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option customizes an Engine
type Option func(*Engine)

// WithClock overrides the creation timestamp source
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides node id generation
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine creates an engine over the given store
func NewEngine(store graph.Store, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) read(ctx context.Context, op string, fn graph.TxFunc) error {
	return e.run(ctx, op, "read", e.store.ReadTx, fn)
}

func (e *Engine) write(ctx context.Context, op string, fn graph.TxFunc) error {
	return e.run(ctx, op, "write", e.store.WriteTx, fn)
}

func (e *Engine) run(ctx context.Context, op, mode string, exec func(context.Context, graph.TxFunc) error, fn graph.TxFunc) error {
	start := time.Now()
	err := exec(ctx, fn)
	metrics.StoreTxDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	metrics.EngineOperations.WithLabelValues(op, outcome(err)).Inc()

	if err != nil && apperrors.TypeOf(err) == "" {
		return fmt.Errorf("%s: %w", op, err)
	}
	return err
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if t := apperrors.TypeOf(err); t != "" {
		return string(t)
	}
	return "error"
}

// kinds names labels in client-facing messages
var kinds = map[graph.Label]string{
	graph.LabelUser:    "user",
	graph.LabelPost:    "post",
	graph.LabelComment: "comment",
}

// requireNode loads a node or fails with the typed NotFound error
func requireNode(ctx context.Context, tx graph.Tx, label graph.Label, id string) (*graph.Node, error) {
	n, err := tx.GetNode(ctx, label, id)
	if errors.Is(err, graph.ErrNodeNotFound) {
		return nil, apperrors.NewNotFound(kinds[label], id)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (e *Engine) createdAt() float64 {
	return toEpochSeconds(e.now())
}
