package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"socialgraph/backend/pkg/config"
)

// Open builds the store selected by cfg.StoreBackend. For Neo4j it verifies
// connectivity and, when cfg.EnsureSchema is set, applies the schema.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn("Using in-memory graph store; data will not survive a restart")
		return NewMemoryStore(log), nil

	case config.BackendNeo4j:
		store, err := OpenNeo4j(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if cfg.EnsureSchema {
			if err := store.EnsureSchema(ctx); err != nil {
				store.Close(ctx)
				return nil, err
			}
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// OpenNeo4j connects to the configured Neo4j instance
func OpenNeo4j(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	log.Info("Connected to Neo4j",
		zap.String("uri", cfg.Neo4jURI),
		zap.String("database", cfg.Neo4jDatabase),
	)
	return NewNeo4jStore(driver, cfg.Neo4jDatabase, log), nil
}
