package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/inkwell/blogapi/internal/domain/comment"
)

type CommentsRepo struct {
	mu     sync.RWMutex
	byPost map[string][]comment.Comment
}

func NewCommentsRepo() *CommentsRepo {
	return &CommentsRepo{
		byPost: make(map[string][]comment.Comment),
	}
}

func (r *CommentsRepo) Create(_ context.Context, c comment.Comment) error {
	r.mu.Lock()
	r.byPost[c.PostID] = append(r.byPost[c.PostID], c)
	r.mu.Unlock()

	return nil
}

// ListByPost returns the post's comments newest first.
func (r *CommentsRepo) ListByPost(_ context.Context, postID string) ([]comment.Comment, error) {
	r.mu.RLock()
	out := append([]comment.Comment(nil), r.byPost[postID]...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if out == nil {
		out = []comment.Comment{}
	}
	return out, nil
}
