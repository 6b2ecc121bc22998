// Package main provides graphctl, the operator tool for the social graph store.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"socialgraph/backend/pkg/config"
	"socialgraph/backend/pkg/logger"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "graphctl",
		Version: version,
		Usage:   "Manage the social graph store",
		Commands: []*cli.Command{
			migrateCommand(),
			seedCommand(),
		},
	}

	err := app.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and initializes the global logger
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Env); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.Get(), nil
}
