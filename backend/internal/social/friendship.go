package social

import (
	"context"

	"go.uber.org/zap"

	"socialgraph/backend/internal/graph"
	apperrors "socialgraph/backend/pkg/errors"
)

// ============================================================================
// Friendship Operations
// ============================================================================

func friendship(u1, u2 string) graph.Edge {
	return graph.Edge{
		Type:       graph.RelFriendsWith,
		From:       graph.Ref(graph.LabelUser, u1),
		To:         graph.Ref(graph.LabelUser, u2),
		Undirected: true,
	}
}

// AddFriend makes u1 and u2 friends. Repeated calls, in either argument
// order, leave a single FRIENDS_WITH edge.
func (e *Engine) AddFriend(ctx context.Context, u1, u2 string) error {
	err := e.write(ctx, "add_friend", func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, graph.LabelUser, u1); err != nil {
			return err
		}
		if _, err := requireNode(ctx, tx, graph.LabelUser, u2); err != nil {
			return err
		}
		if u1 == u2 {
			return apperrors.NewSelfReference(u1)
		}
		return tx.UpsertEdge(ctx, friendship(u1, u2))
	})
	if err != nil {
		return err
	}

	e.logger.Debug("Friendship added", zap.String("user_id", u1), zap.String("friend_id", u2))
	return nil
}

// RemoveFriend deletes the friendship if present
func (e *Engine) RemoveFriend(ctx context.Context, u1, u2 string) error {
	return e.write(ctx, "remove_friend", func(ctx context.Context, tx graph.Tx) error {
		return tx.DeleteEdge(ctx, friendship(u1, u2))
	})
}

// ListFriends returns u's friends
func (e *Engine) ListFriends(ctx context.Context, u string) ([]User, error) {
	var friends []User
	err := e.read(ctx, "list_friends", func(ctx context.Context, tx graph.Tx) error {
		nodes, err := friendsOf(ctx, tx, u)
		if err != nil {
			return err
		}
		friends, err = decodeAll(nodes, decodeUser)
		return err
	})
	if err != nil {
		return nil, err
	}
	byCreation(friends, userKey)
	return friends, nil
}

// AreFriends reports whether the edge exists. Unknown users are simply not
// friends with anyone.
func (e *Engine) AreFriends(ctx context.Context, u1, u2 string) (bool, error) {
	var ok bool
	err := e.read(ctx, "are_friends", func(ctx context.Context, tx graph.Tx) error {
		var err error
		ok, err = tx.HasEdge(ctx, friendship(u1, u2))
		return err
	})
	return ok, err
}

// MutualFriends returns the users who are friends with both u1 and u2.
// The result does not depend on argument order.
func (e *Engine) MutualFriends(ctx context.Context, u1, u2 string) ([]User, error) {
	var mutual []User
	err := e.read(ctx, "mutual_friends", func(ctx context.Context, tx graph.Tx) error {
		n1, err := friendsOf(ctx, tx, u1)
		if err != nil {
			return err
		}
		n2, err := friendsOf(ctx, tx, u2)
		if err != nil {
			return err
		}
		mutual, err = decodeAll(intersect(n1, n2, u1, u2), decodeUser)
		return err
	})
	if err != nil {
		return nil, err
	}
	byCreation(mutual, userKey)
	return mutual, nil
}

func friendsOf(ctx context.Context, tx graph.Tx, u string) ([]graph.Node, error) {
	if _, err := requireNode(ctx, tx, graph.LabelUser, u); err != nil {
		return nil, err
	}
	return tx.Neighbors(ctx, graph.Ref(graph.LabelUser, u), graph.RelFriendsWith, graph.Both, graph.LabelUser)
}

// intersect hashes the smaller neighbor set and probes it with the larger
// one, dropping any id in exclude
func intersect(a, b []graph.Node, exclude ...string) []graph.Node {
	if len(a) > len(b) {
		a, b = b, a
	}
	set := make(map[string]struct{}, len(a))
	for _, n := range a {
		set[n.ID] = struct{}{}
	}
	for _, id := range exclude {
		delete(set, id)
	}

	out := make([]graph.Node, 0, len(set))
	for _, n := range b {
		if _, ok := set[n.ID]; ok {
			out = append(out, n)
			delete(set, n.ID)
		}
	}
	return out
}
