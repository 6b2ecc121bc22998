package social

import (
	"context"

	"go.uber.org/zap"

	"socialgraph/backend/internal/constants"
	"socialgraph/backend/internal/graph"
)

// ============================================================================
// Comment Operations
// ============================================================================

// CreateComment creates the comment node, its CREATED edge from the author
// and its HAS_COMMENT edge from the post in one transaction
func (e *Engine) CreateComment(ctx context.Context, postID, authorID, content string) (*Comment, error) {
	if err := requireFields(field("content", content)); err != nil {
		return nil, err
	}

	node := graph.Node{
		Label: graph.LabelComment,
		ID:    e.newID(),
		Props: map[string]any{
			constants.PropContent:   content,
			constants.PropCreatedAt: e.createdAt(),
		},
	}

	err := e.write(ctx, "create_comment", func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, graph.LabelUser, authorID); err != nil {
			return err
		}
		if _, err := requireNode(ctx, tx, graph.LabelPost, postID); err != nil {
			return err
		}
		if err := tx.CreateNode(ctx, node); err != nil {
			return err
		}
		err := tx.UpsertEdge(ctx, graph.Edge{
			Type: graph.RelCreated,
			From: graph.Ref(graph.LabelUser, authorID),
			To:   node.Ref(),
		})
		if err != nil {
			return err
		}
		return tx.UpsertEdge(ctx, graph.Edge{
			Type: graph.RelHasComment,
			From: graph.Ref(graph.LabelPost, postID),
			To:   node.Ref(),
		})
	})
	if err != nil {
		return nil, err
	}

	comment, err := decodeComment(node)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Comment created",
		zap.String("comment_id", comment.ID),
		zap.String("post_id", postID),
		zap.String("user_id", authorID),
	)
	return &comment, nil
}

// GetComment fails with NotFound when the comment does not exist
func (e *Engine) GetComment(ctx context.Context, id string) (*Comment, error) {
	var comment Comment
	err := e.read(ctx, "get_comment", func(ctx context.Context, tx graph.Tx) error {
		n, err := requireNode(ctx, tx, graph.LabelComment, id)
		if err != nil {
			return err
		}
		comment, err = decodeComment(*n)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment replaces the comment text
func (e *Engine) UpdateComment(ctx context.Context, id, content string) (*Comment, error) {
	if err := requireFields(field("content", content)); err != nil {
		return nil, err
	}

	var comment Comment
	err := e.write(ctx, "update_comment", func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, graph.LabelComment, id); err != nil {
			return err
		}
		if err := tx.UpdateNode(ctx, graph.LabelComment, id, map[string]any{constants.PropContent: content}); err != nil {
			return err
		}
		n, err := tx.GetNode(ctx, graph.LabelComment, id)
		if err != nil {
			return err
		}
		comment, err = decodeComment(*n)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes the comment with its CREATED, HAS_COMMENT and
// LIKES edges
func (e *Engine) DeleteComment(ctx context.Context, id string) error {
	err := e.write(ctx, "delete_comment", func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, graph.LabelComment, id); err != nil {
			return err
		}
		return tx.DeleteNode(ctx, graph.LabelComment, id)
	})
	if err != nil {
		return err
	}

	e.logger.Info("Comment deleted", zap.String("comment_id", id))
	return nil
}
