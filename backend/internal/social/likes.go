package social

import (
	"context"

	"socialgraph/backend/internal/graph"
)

// ============================================================================
// Like Operations
// ============================================================================

func like(userID string, target graph.NodeRef) graph.Edge {
	return graph.Edge{
		Type: graph.RelLikes,
		From: graph.Ref(graph.LabelUser, userID),
		To:   target,
	}
}

// LikePost records that the user likes the post; repeated calls keep one edge
func (e *Engine) LikePost(ctx context.Context, userID, postID string) error {
	return e.like(ctx, "like_post", userID, graph.Ref(graph.LabelPost, postID))
}

// UnlikePost removes the like if present
func (e *Engine) UnlikePost(ctx context.Context, userID, postID string) error {
	return e.unlike(ctx, "unlike_post", userID, graph.Ref(graph.LabelPost, postID))
}

// LikeComment records that the user likes the comment; repeated calls keep one edge
func (e *Engine) LikeComment(ctx context.Context, userID, commentID string) error {
	return e.like(ctx, "like_comment", userID, graph.Ref(graph.LabelComment, commentID))
}

// UnlikeComment removes the like if present
func (e *Engine) UnlikeComment(ctx context.Context, userID, commentID string) error {
	return e.unlike(ctx, "unlike_comment", userID, graph.Ref(graph.LabelComment, commentID))
}

func (e *Engine) like(ctx context.Context, op, userID string, target graph.NodeRef) error {
	return e.write(ctx, op, func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, graph.LabelUser, userID); err != nil {
			return err
		}
		if _, err := requireNode(ctx, tx, target.Label, target.ID); err != nil {
			return err
		}
		return tx.UpsertEdge(ctx, like(userID, target))
	})
}

func (e *Engine) unlike(ctx context.Context, op, userID string, target graph.NodeRef) error {
	return e.write(ctx, op, func(ctx context.Context, tx graph.Tx) error {
		return tx.DeleteEdge(ctx, like(userID, target))
	})
}

// PostLikes returns how many users like the post
func (e *Engine) PostLikes(ctx context.Context, postID string) (int, error) {
	return e.countLikes(ctx, "post_likes", graph.Ref(graph.LabelPost, postID))
}

// CommentLikes returns how many users like the comment
func (e *Engine) CommentLikes(ctx context.Context, commentID string) (int, error) {
	return e.countLikes(ctx, "comment_likes", graph.Ref(graph.LabelComment, commentID))
}

func (e *Engine) countLikes(ctx context.Context, op string, target graph.NodeRef) (int, error) {
	var n int
	err := e.read(ctx, op, func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, target.Label, target.ID); err != nil {
			return err
		}
		likers, err := tx.Neighbors(ctx, target, graph.RelLikes, graph.Incoming, graph.LabelUser)
		n = len(likers)
		return err
	})
	return n, err
}
