package main

import (
	"context"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"socialgraph/backend/internal/constants"
	"socialgraph/backend/internal/graph"
	"socialgraph/backend/internal/seed"
	"socialgraph/backend/internal/social"
	"socialgraph/backend/pkg/logger"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Populate the store with demo users, friendships and posts",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "users",
				Aliases: []string{"n"},
				Usage:   "number of users to create",
				Value:   100,
			},
			&cli.FloatFlag{
				Name:    "friend-prob",
				Aliases: []string{"p"},
				Usage:   "probability that any two users are friends",
				Value:   0.05,
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "maximum requests in flight",
				Value: constants.SeedConcurrency,
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "random seed for friendship selection",
				Value: 1,
			},
		},
		Action: runSeed,
	}
}

func runSeed(ctx context.Context, cmd *cli.Command) error {
	opts := seed.Options{
		Users:       cmd.Int("users"),
		FriendProb:  cmd.Float("friend-prob"),
		Concurrency: cmd.Int("concurrency"),
		Seed:        cmd.Uint64("seed"),
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := graph.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	res, err := seed.Run(ctx, social.NewEngine(store, log), opts, log)
	if err != nil {
		return err
	}

	log.Info("Seeding complete",
		zap.Int("users", res.Users),
		zap.Int("friendships", res.Friendships),
		zap.Int("posts", res.Posts),
	)
	return nil
}
