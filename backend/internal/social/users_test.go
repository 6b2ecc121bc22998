package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgraph/backend/internal/graph"
	apperrors "socialgraph/backend/pkg/errors"
)

func TestCreateUser(t *testing.T) {
	e, _ := newTestEngine(t)

	u, err := e.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)

	got, err := e.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestCreateUser_UniqueIDs(t *testing.T) {
	e, _ := newTestEngine(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		u := mustUser(t, e, "same")
		assert.False(t, seen[u.ID], "duplicate id %s", u.ID)
		seen[u.ID] = true
	}
}

func TestCreateUser_Validation(t *testing.T) {
	e, _ := newTestEngine(t)

	tests := []struct {
		name        string
		user, email string
		field       string
	}{
		{name: "missing name", user: "", email: "a@example.com", field: "name"},
		{name: "missing email", user: "Ada", email: "", field: "email"},
		{name: "whitespace email", user: "Ada", email: "\t", field: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.CreateUser(context.Background(), tt.user, tt.email)
			var ve *apperrors.ErrValidation
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	users, err := e.ListAllUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUpdateUser(t *testing.T) {
	e, _ := newTestEngine(t)
	u := mustUser(t, e, "Ada")

	updated, err := e.UpdateUser(context.Background(), u.ID, "Ada L", "ada@lovelace.org")
	require.NoError(t, err)
	assert.Equal(t, u.ID, updated.ID)
	assert.Equal(t, "Ada L", updated.Name)
	assert.Equal(t, "ada@lovelace.org", updated.Email)
	assert.Equal(t, u.CreatedAt, updated.CreatedAt)

	_, err = e.UpdateUser(context.Background(), "ghost", "x", "y")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = e.UpdateUser(context.Background(), u.ID, "", "y")
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetUser_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.GetUser(context.Background(), "ghost")
	var nf *apperrors.ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "user", nf.Kind)
}

func TestDeleteUser_Cascade(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	a, b := mustUser(t, e, "A"), mustUser(t, e, "B")

	own := mustPost(t, e, a.ID, "A's post")
	onOwn := mustComment(t, e, own.ID, b.ID, "B on A")
	other := mustPost(t, e, b.ID, "B's post")
	onOther := mustComment(t, e, other.ID, a.ID, "A on B")
	kept := mustComment(t, e, other.ID, b.ID, "B on B")

	require.NoError(t, e.AddFriend(ctx, a.ID, b.ID))
	require.NoError(t, e.LikePost(ctx, a.ID, other.ID))
	require.NoError(t, e.LikeComment(ctx, a.ID, kept.ID))
	require.NoError(t, e.LikePost(ctx, b.ID, own.ID))

	require.NoError(t, e.DeleteUser(ctx, a.ID))

	_, err := e.GetUser(ctx, a.ID)
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, nodeExists(t, store, graph.LabelPost, own.ID))
	assert.False(t, nodeExists(t, store, graph.LabelComment, onOwn.ID))
	assert.False(t, nodeExists(t, store, graph.LabelComment, onOther.ID))

	friends, err := e.ListFriends(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	n, err := e.PostLikes(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = e.CommentLikes(ctx, kept.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	comments, err := e.ListCommentsByPost(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, kept.ID, comments[0].ID)

	// b's own CREATED edges now point only at surviving content
	assert.ElementsMatch(t,
		[]string{other.ID, kept.ID},
		neighborIDs(t, store, graph.Ref(graph.LabelUser, b.ID), graph.RelCreated, graph.Outgoing),
	)
	assert.Empty(t, neighborIDs(t, store, graph.Ref(graph.LabelUser, b.ID), graph.RelLikes, graph.Outgoing))
}

func TestDeleteUser_Idempotent(t *testing.T) {
	e, _ := newTestEngine(t)
	u := mustUser(t, e, "A")

	require.NoError(t, e.DeleteUser(context.Background(), u.ID))
	assert.NoError(t, e.DeleteUser(context.Background(), u.ID))
	assert.NoError(t, e.DeleteUser(context.Background(), "ghost"))
}
