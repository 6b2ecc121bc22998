package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"socialgraph/backend/internal/constants"
	apperrors "socialgraph/backend/pkg/errors"
)

// Neo4jStore implements Store on a Neo4j database. Every TxFunc runs inside a
// driver-managed transaction, which commits on success, rolls back on error
// and is retried by the driver on transient failures.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// NewNeo4jStore creates a store on top of an open driver
func NewNeo4jStore(driver neo4j.DriverWithContext, database string, logger *zap.Logger) *Neo4jStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Neo4jStore{
		driver:   driver,
		database: database,
		logger:   logger,
	}
}

// Close closes the Neo4j driver connection
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// ReadTx runs fn in a read transaction
func (s *Neo4jStore) ReadTx(ctx context.Context, fn TxFunc) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(ctx, &neo4jTx{tx: tx})
	})
	return s.translate("read", err)
}

// WriteTx runs fn in a write transaction
func (s *Neo4jStore) WriteTx(ctx context.Context, fn TxFunc) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(ctx, &neo4jTx{tx: tx, writable: true})
	})
	return s.translate("write", err)
}

// translate wraps driver availability failures in the typed Unavailable
// error and passes everything else through untouched
func (s *Neo4jStore) translate(mode string, err error) error {
	if err == nil {
		return nil
	}
	if neo4j.IsConnectivityError(err) || neo4j.IsRetryable(err) || neo4j.IsTransactionExecutionLimit(err) {
		s.logger.Warn("Neo4j transaction failed",
			zap.String("mode", mode),
			zap.Error(err),
		)
		return apperrors.NewUnavailable(mode+" transaction", err)
	}
	return err
}

// ============================================================================
// Transaction
// ============================================================================

type neo4jTx struct {
	tx       neo4j.ManagedTransaction
	writable bool
}

func (t *neo4jTx) collect(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	result, err := t.tx.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return records, nil
}

func (t *neo4jTx) count(ctx context.Context, query string, params map[string]any) (int64, error) {
	records, err := t.collect(ctx, query, params)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	return getInt64FromRecord(records[0], "n"), nil
}

func (t *neo4jTx) CreateNode(ctx context.Context, node Node) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := node.Label.Validate(); err != nil {
		return err
	}

	props := copyProps(node.Props)
	props[constants.PropID] = node.ID

	query := fmt.Sprintf(`CREATE (n:%s) SET n = $props`, node.Label)
	_, err := t.collect(ctx, query, map[string]any{"props": props})
	if err != nil {
		return fmt.Errorf("failed to create %s node: %w", node.Label, err)
	}
	return nil
}

func (t *neo4jTx) GetNode(ctx context.Context, label Label, id string) (*Node, error) {
	if err := label.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`MATCH (n:%s {id: $id}) RETURN n LIMIT 1`, label)
	records, err := t.collect(ctx, query, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNodeNotFound
	}

	n, err := nodeFromRecord(records[0], "n", label)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (t *neo4jTx) UpdateNode(ctx context.Context, label Label, id string, props map[string]any) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := label.Validate(); err != nil {
		return err
	}

	update := copyProps(props)
	delete(update, constants.PropID)

	query := fmt.Sprintf(`
		MATCH (n:%s {id: $id})
		SET n += $props
		RETURN count(n) AS n
	`, label)
	updated, err := t.count(ctx, query, map[string]any{"id": id, "props": update})
	if err != nil {
		return fmt.Errorf("failed to update %s node: %w", label, err)
	}
	if updated == 0 {
		return ErrNodeNotFound
	}
	return nil
}

func (t *neo4jTx) DeleteNode(ctx context.Context, label Label, id string) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := label.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`MATCH (n:%s {id: $id}) DETACH DELETE n`, label)
	if _, err := t.collect(ctx, query, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("failed to delete %s node: %w", label, err)
	}
	return nil
}

func (t *neo4jTx) ListNodes(ctx context.Context, label Label) ([]Node, error) {
	if err := label.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`MATCH (n:%s) RETURN n ORDER BY n.id`, label)
	records, err := t.collect(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	return nodesFromRecords(records, "n", label)
}

// UpsertEdge write-locks both endpoints (canonical order for undirected
// edges) before MERGE, so two concurrent upserts of the same pair serialize
// and the second one matches the edge created by the first.
func (t *neo4jTx) UpsertEdge(ctx context.Context, edge Edge) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := edge.Validate(); err != nil {
		return err
	}
	e := edge.Canonical()

	query := fmt.Sprintf(`
		MATCH (a:%s {id: $from})
		MATCH (b:%s {id: $to})
		SET a._lock = true, b._lock = true
		REMOVE a._lock, b._lock
		MERGE (a)-[:%s]%s(b)
		RETURN count(*) AS n
	`, e.From.Label, e.To.Label, e.Type, arrow(e))

	matched, err := t.count(ctx, query, map[string]any{"from": e.From.ID, "to": e.To.ID})
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", e, err)
	}
	if matched == 0 {
		return ErrNodeNotFound
	}
	return nil
}

func (t *neo4jTx) DeleteEdge(ctx context.Context, edge Edge) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := edge.Validate(); err != nil {
		return err
	}
	e := edge.Canonical()

	query := fmt.Sprintf(`
		MATCH (a:%s {id: $from})-[r:%s]%s(b:%s {id: $to})
		DELETE r
	`, e.From.Label, e.Type, arrow(e), e.To.Label)

	if _, err := t.collect(ctx, query, map[string]any{"from": e.From.ID, "to": e.To.ID}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", e, err)
	}
	return nil
}

func (t *neo4jTx) HasEdge(ctx context.Context, edge Edge) (bool, error) {
	if err := edge.Validate(); err != nil {
		return false, err
	}
	e := edge.Canonical()

	query := fmt.Sprintf(`
		MATCH (a:%s {id: $from})-[r:%s]%s(b:%s {id: $to})
		RETURN count(r) AS n
	`, e.From.Label, e.Type, arrow(e), e.To.Label)

	n, err := t.count(ctx, query, map[string]any{"from": e.From.ID, "to": e.To.ID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (t *neo4jTx) Neighbors(ctx context.Context, ref NodeRef, rel RelType, dir Direction, neighborLabel Label) ([]Node, error) {
	if err := ref.Label.Validate(); err != nil {
		return nil, err
	}
	if err := rel.Validate(); err != nil {
		return nil, err
	}

	target := "n"
	if neighborLabel != "" {
		if err := neighborLabel.Validate(); err != nil {
			return nil, err
		}
		target = "n:" + string(neighborLabel)
	}

	var pattern string
	switch dir {
	case Outgoing:
		pattern = fmt.Sprintf(`(a)-[:%s]->(%s)`, rel, target)
	case Incoming:
		pattern = fmt.Sprintf(`(a)<-[:%s]-(%s)`, rel, target)
	default:
		pattern = fmt.Sprintf(`(a)-[:%s]-(%s)`, rel, target)
	}

	query := fmt.Sprintf(`
		MATCH (a:%s {id: $id})
		MATCH %s
		RETURN DISTINCT n
		ORDER BY n.id
	`, ref.Label, pattern)

	records, err := t.collect(ctx, query, map[string]any{"id": ref.ID})
	if err != nil {
		return nil, err
	}
	return nodesFromRecords(records, "n", neighborLabel)
}

func arrow(e Edge) string {
	if e.Undirected {
		return "-"
	}
	return "->"
}

// IsNodeNotFound reports whether err carries ErrNodeNotFound
func IsNodeNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
