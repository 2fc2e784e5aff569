package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/inkwell/blogapi/internal/domain/post"
)

type PostsRepo struct {
	mu    sync.RWMutex
	items map[string]post.Post
}

func NewPostsRepo() *PostsRepo {
	return &PostsRepo{
		items: make(map[string]post.Post),
	}
}

func (r *PostsRepo) Create(_ context.Context, p post.Post) error {
	r.mu.Lock()
	r.items[p.ID] = p
	r.mu.Unlock()

	return nil
}

// List returns posts newest first.
func (r *PostsRepo) List(_ context.Context) ([]post.Post, error) {
	r.mu.RLock()
	out := make([]post.Post, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *PostsRepo) GetByID(_ context.Context, id string) (post.Post, error) {
	r.mu.RLock()
	p, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return post.Post{}, post.ErrNotFound
	}
	return p, nil
}

func (r *PostsRepo) Update(_ context.Context, p post.Post) (post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.ID]; !ok {
		return post.Post{}, post.ErrNotFound
	}
	r.items[p.ID] = p

	return p, nil
}

func (r *PostsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return post.ErrNotFound
	}
	delete(r.items, id)

	return nil
}
