package social

import (
	"context"

	"socialgraph/backend/internal/graph"
)

// ============================================================================
// Query Operations
// ============================================================================

// ListPostsByUser returns the posts u created
func (e *Engine) ListPostsByUser(ctx context.Context, u string) ([]Post, error) {
	var posts []Post
	err := e.read(ctx, "list_posts_by_user", func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, graph.LabelUser, u); err != nil {
			return err
		}
		nodes, err := tx.Neighbors(ctx, graph.Ref(graph.LabelUser, u), graph.RelCreated, graph.Outgoing, graph.LabelPost)
		if err != nil {
			return err
		}
		posts, err = decodeAll(nodes, decodePost)
		return err
	})
	if err != nil {
		return nil, err
	}
	byCreation(posts, postKey)
	return posts, nil
}

// ListCommentsByPost returns the comments attached to p
func (e *Engine) ListCommentsByPost(ctx context.Context, p string) ([]Comment, error) {
	var comments []Comment
	err := e.read(ctx, "list_comments_by_post", func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, graph.LabelPost, p); err != nil {
			return err
		}
		nodes, err := tx.Neighbors(ctx, graph.Ref(graph.LabelPost, p), graph.RelHasComment, graph.Outgoing, graph.LabelComment)
		if err != nil {
			return err
		}
		comments, err = decodeAll(nodes, decodeComment)
		return err
	})
	if err != nil {
		return nil, err
	}
	byCreation(comments, commentKey)
	return comments, nil
}

// ListAllUsers returns every user
func (e *Engine) ListAllUsers(ctx context.Context) ([]User, error) {
	users, err := listAll(ctx, e, "list_users", graph.LabelUser, decodeUser)
	if err != nil {
		return nil, err
	}
	byCreation(users, userKey)
	return users, nil
}

// ListAllPosts returns every post
func (e *Engine) ListAllPosts(ctx context.Context) ([]Post, error) {
	posts, err := listAll(ctx, e, "list_posts", graph.LabelPost, decodePost)
	if err != nil {
		return nil, err
	}
	byCreation(posts, postKey)
	return posts, nil
}

// ListAllComments returns every comment
func (e *Engine) ListAllComments(ctx context.Context) ([]Comment, error) {
	comments, err := listAll(ctx, e, "list_comments", graph.LabelComment, decodeComment)
	if err != nil {
		return nil, err
	}
	byCreation(comments, commentKey)
	return comments, nil
}

func listAll[T any](ctx context.Context, e *Engine, op string, label graph.Label, decode func(graph.Node) (T, error)) ([]T, error) {
	var out []T
	err := e.read(ctx, op, func(ctx context.Context, tx graph.Tx) error {
		nodes, err := tx.ListNodes(ctx, label)
		if err != nil {
			return err
		}
		out, err = decodeAll(nodes, decode)
		return err
	})
	return out, err
}
