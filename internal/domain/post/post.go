package post

import (
	"errors"
	"time"

	"github.com/inkwell/blogapi/internal/domain/ids"
	"github.com/inkwell/blogapi/internal/domain/user"
)

var ErrNotFound = errors.New("post not found")

type Post struct {
	ID        string      `json:"id" bson:"_id"`
	Title     string      `json:"title" bson:"title"`
	Content   string      `json:"content" bson:"content"`
	Author    user.Author `json:"author" bson:"author"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updatedAt"`
}

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// UpdatePostRequest is a partial update: empty fields keep the stored value.
type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func New(req CreatePostRequest, author user.Author) Post {
	now := time.Now().UTC()

	return Post{
		ID:        ids.New(),
		Title:     req.Title,
		Content:   req.Content,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p Post) Apply(req UpdatePostRequest) Post {
	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Content != "" {
		p.Content = req.Content
	}
	p.UpdatedAt = time.Now().UTC()

	return p
}
