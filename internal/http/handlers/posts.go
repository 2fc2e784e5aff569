package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blogapi/internal/domain/ids"
	"github.com/inkwell/blogapi/internal/domain/post"
	"github.com/inkwell/blogapi/internal/http/middlewares"
)

type PostsStore interface {
	Create(ctx context.Context, p post.Post) error
	List(ctx context.Context) ([]post.Post, error)
	GetByID(ctx context.Context, id string) (post.Post, error)
	Update(ctx context.Context, p post.Post) (post.Post, error)
	Delete(ctx context.Context, id string) error
}

// PostCache is optional; a nil cache means every read goes to the store.
type PostCache interface {
	Get(ctx context.Context, id string) (post.Post, bool)
	Set(ctx context.Context, p post.Post) error
	Delete(ctx context.Context, id string) error
}

type PostsHandler struct {
	repo  PostsStore
	cache PostCache
	log   *slog.Logger
}

func NewPostsHandler(repo PostsStore, cache PostCache, log *slog.Logger) *PostsHandler {
	if log == nil {
		log = slog.Default()
	}

	return &PostsHandler{repo: repo, cache: cache, log: log}
}

const (
	invalidPostID = "Invalid post ID"
	postNotFound  = "Post not found"
	storeTimeout  = 3 * time.Second
)

func (h *PostsHandler) ListPosts(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	posts, err := h.repo.List(cctx)

	if err != nil {
		RespondMessage(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, posts)
}

func (h *PostsHandler) GetPostByID(ctx *gin.Context) {
	id := ctx.Param("id")

	if !ids.Valid(id) {
		RespondMessage(ctx, http.StatusBadRequest, invalidPostID)
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	if h.cache != nil {
		if p, ok := h.cache.Get(cctx, id); ok {
			respondPost(ctx, p)
			return
		}
	}

	p, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			RespondMessage(ctx, http.StatusNotFound, postNotFound)
			return
		}
		RespondMessage(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(cctx, p); err != nil {
			h.log.WarnContext(ctx.Request.Context(), "post cache set failed", "post_id", id, "err", err)
		}
	}

	respondPost(ctx, p)
}

func (h *PostsHandler) CreatePost(ctx *gin.Context) {
	var req post.CreatePostRequest

	if !BindJSON(ctx, &req, "Failed to create post") {
		return
	}

	author, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondBadRequest(ctx, "Failed to create post", errors.New("User not authenticated"))
		return
	}

	p := post.New(req, author.AsAuthor())

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.repo.Create(cctx, p); err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "failed to create post", "err", err)
		RespondBadRequest(ctx, "Failed to create post", err)
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

// UpdatePost overwrites only the fields present in the body.
func (h *PostsHandler) UpdatePost(ctx *gin.Context) {
	id := ctx.Param("id")

	if !ids.Valid(id) {
		RespondMessage(ctx, http.StatusBadRequest, invalidPostID)
		return
	}

	var req post.UpdatePostRequest

	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		RespondMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	existing, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			RespondMessage(ctx, http.StatusNotFound, postNotFound)
			return
		}
		RespondMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.repo.Update(cctx, existing.Apply(req))

	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			RespondMessage(ctx, http.StatusNotFound, postNotFound)
			return
		}
		RespondMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	h.evict(ctx, id)

	ctx.JSON(http.StatusOK, updated)
}

func (h *PostsHandler) DeletePost(ctx *gin.Context) {
	id := ctx.Param("id")

	if !ids.Valid(id) {
		RespondMessage(ctx, http.StatusBadRequest, invalidPostID)
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			RespondMessage(ctx, http.StatusNotFound, postNotFound)
			return
		}
		RespondMessage(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	h.evict(ctx, id)

	RespondMessage(ctx, http.StatusOK, "Post deleted successfully")
}

func (h *PostsHandler) evict(ctx *gin.Context, id string) {
	if h.cache == nil {
		return
	}

	if err := h.cache.Delete(ctx.Request.Context(), id); err != nil {
		h.log.WarnContext(ctx.Request.Context(), "post cache evict failed", "post_id", id, "err", err)
	}
}
