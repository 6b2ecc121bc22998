package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// schemaStatements makes node ids unique per label. Uniqueness constraints
// are backed by an index, so id lookups need nothing further.
var schemaStatements = []string{
	"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE",
	"CREATE CONSTRAINT post_id_unique IF NOT EXISTS FOR (p:Post) REQUIRE p.id IS UNIQUE",
	"CREATE CONSTRAINT comment_id_unique IF NOT EXISTS FOR (c:Comment) REQUIRE c.id IS UNIQUE",
	"CREATE INDEX user_email IF NOT EXISTS FOR (u:User) ON (u.email)",
}

// EnsureSchema creates the constraints and indexes the store relies on.
// Each statement is idempotent and runs in its own auto-commit transaction,
// since schema changes cannot share a transaction with data writes.
func (s *Neo4jStore) EnsureSchema(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	for _, statement := range schemaStatements {
		result, err := session.Run(ctx, statement, nil)
		if err != nil {
			return s.translate("schema", fmt.Errorf("failed to apply %q: %w", statement, err))
		}
		if _, err := result.Consume(ctx); err != nil {
			return s.translate("schema", fmt.Errorf("failed to apply %q: %w", statement, err))
		}
	}

	s.logger.Info("Graph schema ensured", zap.Int("statements", len(schemaStatements)))
	return nil
}
