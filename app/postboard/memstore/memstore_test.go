package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postboard/app/postboard/account"
	"github.com/dmitrymomot/postboard/app/postboard/content"
	"github.com/dmitrymomot/postboard/app/postboard/memstore"
)

func TestDeleteUserCascades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memstore.New()

	require.NoError(t, s.CreateUser(ctx, account.User{ID: "u1", Username: "alice"}))
	require.NoError(t, s.CreateUser(ctx, account.User{ID: "u2", Username: "bob"}))
	assert.ErrorIs(t, s.CreateUser(ctx, account.User{ID: "u3", Username: "alice"}), account.ErrUsernameTaken)

	now := time.Now()
	require.NoError(t, s.CreatePost(ctx, content.Post{ID: "p1", UserID: "u1", CreatedAt: now}))
	require.NoError(t, s.CreatePost(ctx, content.Post{ID: "p2", UserID: "u2", CreatedAt: now}))
	require.NoError(t, s.CreateComment(ctx, content.Comment{ID: "c1", UserID: "u2", PostID: "p1", CreatedAt: now}))
	require.NoError(t, s.CreateComment(ctx, content.Comment{ID: "c2", UserID: "u1", PostID: "p2", CreatedAt: now}))

	require.NoError(t, s.DeleteUser(ctx, "u1"))
	require.NoError(t, s.DeleteUser(ctx, "u1"))

	_, err := s.UserByUsername(ctx, "alice")
	assert.ErrorIs(t, err, account.ErrUserNotFound)
	_, err = s.PostByID(ctx, "p1")
	assert.ErrorIs(t, err, content.ErrPostNotFound)

	comments, err := s.ListRecentComments(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, comments)

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "bob", posts[0].Username)

	require.NoError(t, s.CreateUser(ctx, account.User{ID: "u4", Username: "alice"}), "username is free again")
}

func TestUpdateMissingPost(t *testing.T) {
	t.Parallel()
	s := memstore.New()
	assert.ErrorIs(t, s.UpdatePost(context.Background(), "nope", "t", "c"), content.ErrPostNotFound)
}
