package social

import (
	"context"

	"go.uber.org/zap"

	"socialgraph/backend/internal/constants"
	"socialgraph/backend/internal/graph"
)

// ============================================================================
// User Operations
// ============================================================================

// CreateUser creates a user node with a fresh id
func (e *Engine) CreateUser(ctx context.Context, name, email string) (*User, error) {
	if err := requireFields(field("name", name), field("email", email)); err != nil {
		return nil, err
	}

	node := graph.Node{
		Label: graph.LabelUser,
		ID:    e.newID(),
		Props: map[string]any{
			constants.PropName:      name,
			constants.PropEmail:     email,
			constants.PropCreatedAt: e.createdAt(),
		},
	}

	err := e.write(ctx, "create_user", func(ctx context.Context, tx graph.Tx) error {
		return tx.CreateNode(ctx, node)
	})
	if err != nil {
		return nil, err
	}

	user, err := decodeUser(node)
	if err != nil {
		return nil, err
	}

	e.logger.Info("User created", zap.String("user_id", user.ID))
	return &user, nil
}

// GetUser fails with NotFound when the user does not exist
func (e *Engine) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	err := e.read(ctx, "get_user", func(ctx context.Context, tx graph.Tx) error {
		n, err := requireNode(ctx, tx, graph.LabelUser, id)
		if err != nil {
			return err
		}
		user, err = decodeUser(*n)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces a user's name and email
func (e *Engine) UpdateUser(ctx context.Context, id, name, email string) (*User, error) {
	if err := requireFields(field("name", name), field("email", email)); err != nil {
		return nil, err
	}

	var user User
	err := e.write(ctx, "update_user", func(ctx context.Context, tx graph.Tx) error {
		if _, err := requireNode(ctx, tx, graph.LabelUser, id); err != nil {
			return err
		}
		err := tx.UpdateNode(ctx, graph.LabelUser, id, map[string]any{
			constants.PropName:  name,
			constants.PropEmail: email,
		})
		if err != nil {
			return err
		}
		n, err := tx.GetNode(ctx, graph.LabelUser, id)
		if err != nil {
			return err
		}
		user, err = decodeUser(*n)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the user together with everything the user authored:
// each post (with its comments) and each comment, along with every incident
// relationship. Content never outlives its creator, so every remaining post
// and comment keeps exactly one CREATED edge. Deleting an absent user is a
// no-op.
func (e *Engine) DeleteUser(ctx context.Context, id string) error {
	var posts, comments int
	err := e.write(ctx, "delete_user", func(ctx context.Context, tx graph.Tx) error {
		posts, comments = 0, 0
		if _, err := tx.GetNode(ctx, graph.LabelUser, id); graph.IsNodeNotFound(err) {
			return nil
		} else if err != nil {
			return err
		}

		user := graph.Ref(graph.LabelUser, id)
		authored, err := tx.Neighbors(ctx, user, graph.RelCreated, graph.Outgoing, graph.LabelPost)
		if err != nil {
			return err
		}
		for _, p := range authored {
			n, err := deletePostTx(ctx, tx, p.ID)
			if err != nil {
				return err
			}
			posts++
			comments += n
		}

		// re-read: comments under the user's own posts are already gone
		written, err := tx.Neighbors(ctx, user, graph.RelCreated, graph.Outgoing, graph.LabelComment)
		if err != nil {
			return err
		}
		for _, c := range written {
			if err := tx.DeleteNode(ctx, graph.LabelComment, c.ID); err != nil {
				return err
			}
			comments++
		}

		return tx.DeleteNode(ctx, graph.LabelUser, id)
	})
	if err != nil {
		return err
	}

	e.logger.Info("User deleted",
		zap.String("user_id", id),
		zap.Int("posts_removed", posts),
		zap.Int("comments_removed", comments),
	)
	return nil
}
