// Package seed fills a graph with demo users, friendships and posts.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"socialgraph/backend/internal/constants"
	"socialgraph/backend/internal/social"
	apperrors "socialgraph/backend/pkg/errors"
)

// Options controls the size and shape of the generated graph
type Options struct {
	Users       int
	FriendProb  float64
	Concurrency int
	Seed        uint64
}

// Result counts what Run created
type Result struct {
	Users       int
	Friendships int
	Posts       int
}

// Validate checks the option ranges
func (o Options) Validate() error {
	if o.Users < 1 || o.Users > constants.MaxSeedUsers {
		return apperrors.NewConfigValidationFailed("users", fmt.Sprintf("must be between 1 and %d", constants.MaxSeedUsers))
	}
	if o.FriendProb < 0 || o.FriendProb > 1 {
		return apperrors.NewConfigValidationFailed("friend-prob", "must be between 0 and 1")
	}
	return nil
}

// Run creates the users, then friendships between random pairs, then one
// post per user. Each friendship is requested from both sides at once, so a
// correct engine still ends up with a single edge per pair.
func Run(ctx context.Context, engine *social.Engine, opts Options, log *zap.Logger) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = constants.SeedConcurrency
	}
	if log == nil {
		log = zap.NewNop()
	}

	ids := make([]string, opts.Users)
	err := each(ctx, opts.Concurrency, opts.Users, func(ctx context.Context, i int) error {
		name := fmt.Sprintf("user%05d", i)
		u, err := engine.CreateUser(ctx, name, name+"@example.com")
		if err != nil {
			return err
		}
		ids[i] = u.ID
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to create users: %w", err)
	}
	log.Info("Seeded users", zap.Int("count", len(ids)))

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	var pairs [][2]string
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if rng.Float64() < opts.FriendProb {
				pairs = append(pairs, [2]string{ids[i], ids[j]})
			}
		}
	}

	err = each(ctx, opts.Concurrency, 2*len(pairs), func(ctx context.Context, i int) error {
		p := pairs[i/2]
		if i%2 == 1 {
			return engine.AddFriend(ctx, p[1], p[0])
		}
		return engine.AddFriend(ctx, p[0], p[1])
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to add friendships: %w", err)
	}
	log.Info("Seeded friendships", zap.Int("count", len(pairs)))

	var posts atomic.Int64
	err = each(ctx, opts.Concurrency, len(ids), func(ctx context.Context, i int) error {
		title := fmt.Sprintf("Hello from user%05d", i)
		if _, err := engine.CreatePost(ctx, ids[i], title, "This is a seeded post."); err != nil {
			return err
		}
		posts.Add(1)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to create posts: %w", err)
	}
	log.Info("Seeded posts", zap.Int64("count", posts.Load()))

	return Result{
		Users:       len(ids),
		Friendships: len(pairs),
		Posts:       int(posts.Load()),
	}, nil
}

// each runs fn for 0..n-1 with at most limit calls in flight and stops at
// the first error
func each(ctx context.Context, limit, n int, fn func(context.Context, int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return fn(ctx, i)
		})
	}
	return g.Wait()
}
