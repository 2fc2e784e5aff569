package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/inkwell/blogapi/internal/domain/comment"
	"github.com/inkwell/blogapi/internal/domain/ids"
	"github.com/inkwell/blogapi/internal/domain/post"
	"github.com/inkwell/blogapi/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// setupDB connects to TEST_MONGODB_URI and hands back a throwaway database.
func setupDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set")
	}

	ctx := context.Background()

	client, db, err := Connect(ctx, uri, "blogapi_test_"+ids.New())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	require.NoError(t, EnsureIndexes(ctx, db))

	return db
}

func TestUsersRepo_Mongo(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewUsersRepo(db, nil)

	u, err := user.New(user.RegisterRequest{Username: "a", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	dup, err := user.New(user.RegisterRequest{Username: "b", Email: "a@x.com", Password: "p2"})
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), user.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.ComparePassword("p1"))

	_, err = repo.GetByID(ctx, ids.New())
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestPostsAndComments_Mongo(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	posts := NewPostsRepo(db, nil)
	comments := NewCommentsRepo(db, nil)
	author := user.Author{ID: ids.New(), Username: "a"}

	first := post.New(post.CreatePostRequest{Title: "first", Content: "1"}, author)
	first.CreatedAt = first.CreatedAt.Add(-time.Minute)
	second := post.New(post.CreatePostRequest{Title: "second", Content: "2"}, author)

	require.NoError(t, posts.Create(ctx, first))
	require.NoError(t, posts.Create(ctx, second))

	list, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	updated, err := posts.Update(ctx, first.Apply(post.UpdatePostRequest{Title: "edited"}))
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Title)
	assert.Equal(t, "1", updated.Content)

	c := comment.New(comment.CreateCommentRequest{Content: "nice", PostID: second.ID}, author)
	require.NoError(t, comments.Create(ctx, c))

	got, err := comments.ListByPost(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Author.Username)

	require.NoError(t, posts.Delete(ctx, second.ID))
	_, err = posts.GetByID(ctx, second.ID)
	assert.ErrorIs(t, err, post.ErrNotFound)
	assert.ErrorIs(t, posts.Delete(ctx, second.ID), post.ErrNotFound)

	// comments are not cascaded
	got, err = comments.ListByPost(ctx, second.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
