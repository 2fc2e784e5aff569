package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blogapi/internal/domain/comment"
	"github.com/inkwell/blogapi/internal/domain/post"
	"github.com/inkwell/blogapi/internal/domain/user"
	"github.com/inkwell/blogapi/internal/http/middlewares"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// asUser stands in for the auth gate in handler tests.
func asUser(u user.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		middlewares.SetUser(c, u)
		c.Next()
	}
}

var testAuthor = user.User{ID: "66f1c0ffee0000000000aaaa", Username: "a", Email: "a@x.com"}

type fakeUsers struct {
	createFn     func(ctx context.Context, u user.User) error
	getByEmailFn func(ctx context.Context, email string) (user.User, error)
}

func (f *fakeUsers) Create(ctx context.Context, u user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return user.User{}, user.ErrNotFound
}

type fakeTokens struct {
	token string
	err   error
	got   string
}

func (f *fakeTokens) GenerateToken(userID string) (string, error) {
	f.got = userID
	return f.token, f.err
}

type fakePosts struct {
	createFn  func(ctx context.Context, p post.Post) error
	listFn    func(ctx context.Context) ([]post.Post, error)
	getByIDFn func(ctx context.Context, id string) (post.Post, error)
	updateFn  func(ctx context.Context, p post.Post) (post.Post, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (f *fakePosts) Create(ctx context.Context, p post.Post) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePosts) List(ctx context.Context) ([]post.Post, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []post.Post{}, nil
}

func (f *fakePosts) GetByID(ctx context.Context, id string) (post.Post, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return post.Post{}, post.ErrNotFound
}

func (f *fakePosts) Update(ctx context.Context, p post.Post) (post.Post, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return p, nil
}

func (f *fakePosts) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeCache struct {
	items   map[string]post.Post
	evicted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string]post.Post{}}
}

func (f *fakeCache) Get(_ context.Context, id string) (post.Post, bool) {
	p, ok := f.items[id]
	return p, ok
}

func (f *fakeCache) Set(_ context.Context, p post.Post) error {
	f.items[p.ID] = p
	return nil
}

func (f *fakeCache) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	f.evicted = append(f.evicted, id)
	return nil
}

type fakeComments struct {
	createFn     func(ctx context.Context, c comment.Comment) error
	listByPostFn func(ctx context.Context, postID string) ([]comment.Comment, error)
}

func (f *fakeComments) Create(ctx context.Context, c comment.Comment) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeComments) ListByPost(ctx context.Context, postID string) ([]comment.Comment, error) {
	if f.listByPostFn != nil {
		return f.listByPostFn(ctx, postID)
	}
	return []comment.Comment{}, nil
}

func doRequest(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
