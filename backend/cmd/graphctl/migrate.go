package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"socialgraph/backend/internal/graph"
	"socialgraph/backend/pkg/logger"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Create uniqueness constraints and indexes in Neo4j",
		Action: runMigrate,
	}
}

func runMigrate(ctx context.Context, _ *cli.Command) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := graph.OpenNeo4j(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	return store.EnsureSchema(ctx)
}
