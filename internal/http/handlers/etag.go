package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blogapi/internal/domain/post"
)

// postETag changes whenever the post is written, since every write moves
// UpdatedAt forward.
func postETag(p post.Post) string {
	return `W/"` + p.ID + "-" + strconv.FormatInt(p.UpdatedAt.UnixNano(), 36) + `"`
}

// respondPost answers 304 when the caller already holds the current version.
func respondPost(ctx *gin.Context, p post.Post) {
	etag := postETag(p)
	ctx.Header("ETag", etag)

	if ifNoneMatchMatches(ctx.GetHeader("If-None-Match"), etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func ifNoneMatchMatches(headerValue, currentETag string) bool {
	headerValue = strings.TrimSpace(headerValue)
	if headerValue == "" {
		return false
	}

	if headerValue == "*" {
		return true
	}

	current := opaqueTag(currentETag)

	for _, part := range strings.Split(headerValue, ",") {
		if opaqueTag(part) == current {
			return true
		}
	}

	return false
}

// opaqueTag drops the weak marker; If-None-Match uses weak comparison.
func opaqueTag(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "W/")
}
