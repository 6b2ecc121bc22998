package social

import (
	"context"

	"go.uber.org/zap"

	"socialgraph/backend/internal/constants"
	"socialgraph/backend/internal/graph"
)

// ============================================================================
// Post Operations
// ============================================================================

// CreatePost creates a post and its CREATED edge from the author
func (e *Engine) CreatePost(ctx context.Context, authorID, title, content string) (*Post, error) {
	if err := requireFields(field("title", title), field("content", content)); err != nil {
		return nil, err
	}

	node := graph.Node{
		Label: graph.LabelPost,
		ID:    e.newID(),
		Props: map[string]any{
			constants.PropTitle:     title,
			constants.PropContent:   content,
			constants.PropCreatedAt: e.createdAt(),
		},
	}

	err := e.write(ctx, "create_post", func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, graph.LabelUser, authorID); err != nil {
			return err
		}
		if err := tx.CreateNode(ctx, node); err != nil {
			return err
		}
		return tx.UpsertEdge(ctx, graph.Edge{
			Type: graph.RelCreated,
			From: graph.Ref(graph.LabelUser, authorID),
			To:   node.Ref(),
		})
	})
	if err != nil {
		return nil, err
	}

	post, err := decodePost(node)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Post created", zap.String("post_id", post.ID), zap.String("user_id", authorID))
	return &post, nil
}

// GetPost fails with NotFound when the post does not exist
func (e *Engine) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	err := e.read(ctx, "get_post", func(ctx context.Context, tx graph.Tx) error {
		n, err := requireNode(ctx, tx, graph.LabelPost, id)
		if err != nil {
			return err
		}
		post, err = decodePost(*n)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost replaces title and content; relationships are untouched
func (e *Engine) UpdatePost(ctx context.Context, id, title, content string) (*Post, error) {
	if err := requireFields(field("title", title), field("content", content)); err != nil {
		return nil, err
	}

	var post Post
	err := e.write(ctx, "update_post", func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, graph.LabelPost, id); err != nil {
			return err
		}
		err := tx.UpdateNode(ctx, graph.LabelPost, id, map[string]any{
			constants.PropTitle:   title,
			constants.PropContent: content,
		})
		if err != nil {
			return err
		}
		n, err := tx.GetNode(ctx, graph.LabelPost, id)
		if err != nil {
			return err
		}
		post, err = decodePost(*n)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes the post, its comments and every relationship touching
// either (CREATED, HAS_COMMENT, LIKES)
func (e *Engine) DeletePost(ctx context.Context, id string) error {
	var removed int
	err := e.write(ctx, "delete_post", func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, graph.LabelPost, id); err != nil {
			return err
		}
		var err error
		removed, err = deletePostTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return err
	}

	e.logger.Info("Post deleted", zap.String("post_id", id), zap.Int("comments_removed", removed))
	return nil
}

// deletePostTx detach-deletes a post and its comments, returning the number
// of comments removed
func deletePostTx(ctx context.Context, tx graph.Tx, id string) (int, error) {
	comments, err := tx.Neighbors(ctx, graph.Ref(graph.LabelPost, id), graph.RelHasComment, graph.Outgoing, graph.LabelComment)
	if err != nil {
		return 0, err
	}
	for _, c := range comments {
		if err := tx.DeleteNode(ctx, graph.LabelComment, c.ID); err != nil {
			return 0, err
		}
	}
	if err := tx.DeleteNode(ctx, graph.LabelPost, id); err != nil {
		return 0, err
	}
	return len(comments), nil
}
