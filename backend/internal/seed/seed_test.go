package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgraph/backend/internal/constants"
	"socialgraph/backend/internal/graph"
	"socialgraph/backend/internal/social"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	engine := social.NewEngine(graph.NewMemoryStore(nil), nil)

	res, err := Run(ctx, engine, Options{Users: 20, FriendProb: 0.3, Concurrency: 4, Seed: 7}, nil)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Users)
	assert.Equal(t, 20, res.Posts)

	users, err := engine.ListAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 20)

	posts, err := engine.ListAllPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 20)

	// each friendship appears once on each side
	var degree int
	for _, u := range users {
		friends, err := engine.ListFriends(ctx, u.ID)
		require.NoError(t, err)
		degree += len(friends)
	}
	assert.Equal(t, 2*res.Friendships, degree)
}

func TestRun_Deterministic(t *testing.T) {
	ctx := context.Background()
	opts := Options{Users: 15, FriendProb: 0.5, Seed: 42}

	first, err := Run(ctx, social.NewEngine(graph.NewMemoryStore(nil), nil), opts, nil)
	require.NoError(t, err)
	second, err := Run(ctx, social.NewEngine(graph.NewMemoryStore(nil), nil), opts, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_Extremes(t *testing.T) {
	ctx := context.Background()

	none, err := Run(ctx, social.NewEngine(graph.NewMemoryStore(nil), nil), Options{Users: 5, FriendProb: 0}, nil)
	require.NoError(t, err)
	assert.Zero(t, none.Friendships)

	all, err := Run(ctx, social.NewEngine(graph.NewMemoryStore(nil), nil), Options{Users: 5, FriendProb: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, all.Friendships)
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "valid", opts: Options{Users: 10, FriendProb: 0.1}},
		{name: "zero users", opts: Options{Users: 0, FriendProb: 0.1}, wantErr: true},
		{name: "too many users", opts: Options{Users: constants.MaxSeedUsers + 1}, wantErr: true},
		{name: "negative probability", opts: Options{Users: 1, FriendProb: -0.1}, wantErr: true},
		{name: "probability above one", opts: Options{Users: 1, FriendProb: 1.5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
