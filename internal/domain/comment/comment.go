package comment

import (
	"time"

	"github.com/inkwell/blogapi/internal/domain/ids"
	"github.com/inkwell/blogapi/internal/domain/user"
)

type Comment struct {
	ID        string      `json:"id" bson:"_id"`
	Content   string      `json:"content" bson:"content"`
	PostID    string      `json:"post" bson:"post"`
	Author    user.Author `json:"author" bson:"author"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
	PostID  string `json:"postId" binding:"required"`
}

func New(req CreateCommentRequest, author user.Author) Comment {
	return Comment{
		ID:        ids.New(),
		Content:   req.Content,
		PostID:    req.PostID,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
}
