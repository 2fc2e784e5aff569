package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blogapi/internal/domain/comment"
	"github.com/inkwell/blogapi/internal/domain/ids"
	"github.com/inkwell/blogapi/internal/http/middlewares"
)

type CommentsStore interface {
	Create(ctx context.Context, c comment.Comment) error
	ListByPost(ctx context.Context, postID string) ([]comment.Comment, error)
}

type CommentsHandler struct {
	repo CommentsStore
	log  *slog.Logger
}

func NewCommentsHandler(repo CommentsStore, log *slog.Logger) *CommentsHandler {
	if log == nil {
		log = slog.Default()
	}

	return &CommentsHandler{repo: repo, log: log}
}

var errInvalidPostID = errors.New(invalidPostID)

func (h *CommentsHandler) CreateComment(ctx *gin.Context) {
	var req comment.CreateCommentRequest

	if !BindJSON(ctx, &req, "Failed to create comment") {
		return
	}

	if !ids.Valid(req.PostID) {
		RespondBadRequest(ctx, "Failed to create comment", errInvalidPostID)
		return
	}

	author, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondBadRequest(ctx, "Failed to create comment", errors.New("User not authenticated"))
		return
	}

	c := comment.New(req, author.AsAuthor())

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.repo.Create(cctx, c); err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "failed to create comment", "err", err)
		RespondBadRequest(ctx, "Failed to create comment", err)
		return
	}

	ctx.JSON(http.StatusCreated, c)
}

func (h *CommentsHandler) ListCommentsByPost(ctx *gin.Context) {
	postID := ctx.Param("postId")

	if !ids.Valid(postID) {
		RespondBadRequest(ctx, "Failed to get comments", errInvalidPostID)
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	comments, err := h.repo.ListByPost(cctx, postID)

	if err != nil {
		RespondBadRequest(ctx, "Failed to get comments", err)
		return
	}

	ctx.JSON(http.StatusOK, comments)
}
