package graph

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// These tests require a running Neo4j instance.
// Set NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD environment variables.
func TestNeo4jStore_FriendshipUpsert(t *testing.T) {
	store := newTestNeo4jStore(t)
	ctx := context.Background()

	suffix := time.Now().Format("20060102150405.000000")
	a, b := "test-a-"+suffix, "test-b-"+suffix
	t.Cleanup(func() {
		_ = store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
			_ = tx.DeleteNode(ctx, LabelUser, a)
			return tx.DeleteNode(ctx, LabelUser, b)
		})
	})

	err := store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.CreateNode(ctx, Node{Label: LabelUser, ID: a, Props: map[string]any{"name": "A"}}); err != nil {
			return err
		}
		return tx.CreateNode(ctx, Node{Label: LabelUser, ID: b, Props: map[string]any{"name": "B"}})
	})
	require.NoError(t, err)

	friendship := Edge{Type: RelFriendsWith, From: Ref(LabelUser, a), To: Ref(LabelUser, b), Undirected: true}
	reversed := Edge{Type: RelFriendsWith, From: Ref(LabelUser, b), To: Ref(LabelUser, a), Undirected: true}

	for _, e := range []Edge{friendship, reversed, friendship} {
		require.NoError(t, store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.UpsertEdge(ctx, e)
		}))
	}

	err = store.ReadTx(ctx, func(ctx context.Context, tx Tx) error {
		friends, err := tx.Neighbors(ctx, Ref(LabelUser, a), RelFriendsWith, Both, LabelUser)
		require.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, b, friends[0].ID)

		ok, err := tx.HasEdge(ctx, reversed)
		require.NoError(t, err)
		assert.True(t, ok)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.DeleteEdge(ctx, reversed)
	}))

	err = store.ReadTx(ctx, func(ctx context.Context, tx Tx) error {
		ok, err := tx.HasEdge(ctx, friendship)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestNeo4jStore_GetNode_NotFound(t *testing.T) {
	store := newTestNeo4jStore(t)

	err := store.ReadTx(context.Background(), func(ctx context.Context, tx Tx) error {
		_, err := tx.GetNode(ctx, LabelUser, "non-existent-user")
		return err
	})
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestNeo4jStore_DeleteNode_DetachesEdges(t *testing.T) {
	store := newTestNeo4jStore(t)
	ctx := context.Background()

	suffix := time.Now().Format("20060102150405.000000")
	author, friend, post := "test-author-"+suffix, "test-friend-"+suffix, "test-post-"+suffix
	createTestNodes(t, store,
		Node{Label: LabelUser, ID: author},
		Node{Label: LabelUser, ID: friend},
		Node{Label: LabelPost, ID: post},
	)

	created := Edge{Type: RelCreated, From: Ref(LabelUser, author), To: Ref(LabelPost, post)}
	liked := Edge{Type: RelLikes, From: Ref(LabelUser, friend), To: Ref(LabelPost, post)}
	friendship := Edge{Type: RelFriendsWith, From: Ref(LabelUser, author), To: Ref(LabelUser, friend), Undirected: true}
	require.NoError(t, store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
		for _, e := range []Edge{created, liked, friendship} {
			if err := tx.UpsertEdge(ctx, e); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.DeleteNode(ctx, LabelUser, author)
	}))

	err := store.ReadTx(ctx, func(ctx context.Context, tx Tx) error {
		_, err := tx.GetNode(ctx, LabelUser, author)
		assert.ErrorIs(t, err, ErrNodeNotFound)

		creators, err := tx.Neighbors(ctx, Ref(LabelPost, post), RelCreated, Incoming, LabelUser)
		require.NoError(t, err)
		assert.Empty(t, creators)

		friends, err := tx.Neighbors(ctx, Ref(LabelUser, friend), RelFriendsWith, Both, LabelUser)
		require.NoError(t, err)
		assert.Empty(t, friends)

		// edges not touching the deleted node survive
		ok, err := tx.HasEdge(ctx, liked)
		require.NoError(t, err)
		assert.True(t, ok)
		return nil
	})
	require.NoError(t, err)

	// deleting again is a no-op
	require.NoError(t, store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.DeleteNode(ctx, LabelUser, author)
	}))
}

func TestNeo4jStore_NeighborsDirection(t *testing.T) {
	store := newTestNeo4jStore(t)
	ctx := context.Background()

	suffix := time.Now().Format("20060102150405.000000")
	author, post, comment := "test-author-"+suffix, "test-post-"+suffix, "test-comment-"+suffix
	createTestNodes(t, store,
		Node{Label: LabelUser, ID: author},
		Node{Label: LabelPost, ID: post},
		Node{Label: LabelComment, ID: comment},
	)

	require.NoError(t, store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.UpsertEdge(ctx, Edge{Type: RelCreated, From: Ref(LabelUser, author), To: Ref(LabelPost, post)}); err != nil {
			return err
		}
		return tx.UpsertEdge(ctx, Edge{Type: RelCreated, From: Ref(LabelUser, author), To: Ref(LabelComment, comment)})
	}))

	err := store.ReadTx(ctx, func(ctx context.Context, tx Tx) error {
		out, err := tx.Neighbors(ctx, Ref(LabelUser, author), RelCreated, Outgoing, "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{post, comment}, nodeIDs(out))

		posts, err := tx.Neighbors(ctx, Ref(LabelUser, author), RelCreated, Outgoing, LabelPost)
		require.NoError(t, err)
		assert.Equal(t, []string{post}, nodeIDs(posts))

		in, err := tx.Neighbors(ctx, Ref(LabelUser, author), RelCreated, Incoming, "")
		require.NoError(t, err)
		assert.Empty(t, in)

		creator, err := tx.Neighbors(ctx, Ref(LabelPost, post), RelCreated, Incoming, LabelUser)
		require.NoError(t, err)
		assert.Equal(t, []string{author}, nodeIDs(creator))

		both, err := tx.Neighbors(ctx, Ref(LabelPost, post), RelCreated, Both, "")
		require.NoError(t, err)
		assert.Equal(t, []string{author}, nodeIDs(both))
		return nil
	})
	require.NoError(t, err)
}

func TestNeo4jStore_DeleteEdge_Undirected(t *testing.T) {
	store := newTestNeo4jStore(t)
	ctx := context.Background()

	suffix := time.Now().Format("20060102150405.000000")
	a, b := "test-z-"+suffix, "test-a-"+suffix
	createTestNodes(t, store, Node{Label: LabelUser, ID: a}, Node{Label: LabelUser, ID: b})

	forward := Edge{Type: RelFriendsWith, From: Ref(LabelUser, a), To: Ref(LabelUser, b), Undirected: true}
	reversed := Edge{Type: RelFriendsWith, From: Ref(LabelUser, b), To: Ref(LabelUser, a), Undirected: true}

	for _, pair := range [][2]Edge{{forward, reversed}, {reversed, forward}} {
		require.NoError(t, store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.UpsertEdge(ctx, pair[0])
		}))
		require.NoError(t, store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.DeleteEdge(ctx, pair[1])
		}))

		err := store.ReadTx(ctx, func(ctx context.Context, tx Tx) error {
			for _, e := range []Edge{forward, reversed} {
				ok, err := tx.HasEdge(ctx, e)
				require.NoError(t, err)
				assert.False(t, ok)
			}
			friends, err := tx.Neighbors(ctx, Ref(LabelUser, a), RelFriendsWith, Both, LabelUser)
			require.NoError(t, err)
			assert.Empty(t, friends)
			return nil
		})
		require.NoError(t, err)
	}
}

func TestNeo4jStore_ConcurrentUpsertLeavesOneEdge(t *testing.T) {
	store := newTestNeo4jStore(t)
	ctx := context.Background()

	suffix := time.Now().Format("20060102150405.000000")
	a, b := "test-a-"+suffix, "test-b-"+suffix
	createTestNodes(t, store, Node{Label: LabelUser, ID: a}, Node{Label: LabelUser, ID: b})

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 16; i++ {
		from, to := a, b
		if i%2 == 1 {
			from, to = b, a
		}
		g.Go(func() error {
			return store.WriteTx(gctx, func(ctx context.Context, tx Tx) error {
				return tx.UpsertEdge(ctx, Edge{Type: RelFriendsWith, From: Ref(LabelUser, from), To: Ref(LabelUser, to), Undirected: true})
			})
		})
	}
	require.NoError(t, g.Wait())

	err := store.ReadTx(ctx, func(ctx context.Context, tx Tx) error {
		friends, err := tx.Neighbors(ctx, Ref(LabelUser, a), RelFriendsWith, Both, LabelUser)
		require.NoError(t, err)
		assert.Equal(t, []string{b}, nodeIDs(friends))

		friends, err = tx.Neighbors(ctx, Ref(LabelUser, b), RelFriendsWith, Both, LabelUser)
		require.NoError(t, err)
		assert.Equal(t, []string{a}, nodeIDs(friends))
		return nil
	})
	require.NoError(t, err)

	result, err := neo4j.ExecuteQuery(ctx, store.driver,
		`MATCH (:User {id: $a})-[r:FRIENDS_WITH]-(:User {id: $b}) RETURN count(r) AS n`,
		map[string]any{"a": a, "b": b}, neo4j.EagerResultTransformer)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	n, _ := result.Records[0].Get("n")
	assert.EqualValues(t, 1, n)
}

// createTestNodes inserts nodes and removes them, with any edges, when the test ends
func createTestNodes(t *testing.T, store *Neo4jStore, nodes ...Node) {
	t.Helper()
	ctx := context.Background()
	t.Cleanup(func() {
		_ = store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
			for _, n := range nodes {
				_ = tx.DeleteNode(ctx, n.Label, n.ID)
			}
			return nil
		})
	})

	require.NoError(t, store.WriteTx(ctx, func(ctx context.Context, tx Tx) error {
		for _, n := range nodes {
			if err := tx.CreateNode(ctx, n); err != nil {
				return err
			}
		}
		return nil
	}))
}

func nodeIDs(nodes []Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func newTestNeo4jStore(t *testing.T) *Neo4jStore {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("NEO4J_URI not set")
	}

	ctx := context.Background()
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(os.Getenv("NEO4J_USER"), os.Getenv("NEO4J_PASSWORD"), ""))
	require.NoError(t, err)

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		t.Skipf("Neo4j not reachable: %v", err)
	}

	store := NewNeo4jStore(driver, "", nil)
	t.Cleanup(func() { _ = store.Close(ctx) })
	require.NoError(t, store.EnsureSchema(ctx))
	return store
}
