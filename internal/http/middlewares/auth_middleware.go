package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blogapi/internal/actorctx"
	"github.com/inkwell/blogapi/internal/auth"
	"github.com/inkwell/blogapi/internal/domain/user"
)

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

type UserFinder interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type FailureObserver interface {
	ObserveAuthFailure(reason string)
}

// FailureReason is what a rejected caller is told in the "error" field.
type FailureReason string

const (
	ReasonNoToken      FailureReason = "No token provided"
	ReasonInvalidToken FailureReason = "Invalid or expired token"
	ReasonUserNotFound FailureReason = "User not found"
	ReasonLookupFailed FailureReason = "User lookup failed"
)

// Code is the metric label for the reason.
func (r FailureReason) Code() string {
	switch r {
	case ReasonNoToken:
		return "no_token"
	case ReasonInvalidToken:
		return "invalid_token"
	case ReasonUserNotFound:
		return "user_not_found"
	case ReasonLookupFailed:
		return "lookup_failed"
	default:
		return "unknown"
	}
}

// GateResult is either a resolved user or a failure reason, never both.
// Err holds the underlying cause for server-side logging only.
type GateResult struct {
	User   user.User
	Reason FailureReason
	Err    error
}

func (r GateResult) OK() bool {
	return r.Reason == ""
}

const userLookupTimeout = 2 * time.Second

type Gate struct {
	tokens TokenVerifier
	users  UserFinder
	log    *slog.Logger
	obs    FailureObserver
}

func NewGate(tokens TokenVerifier, users UserFinder, log *slog.Logger, obs FailureObserver) *Gate {
	if log == nil {
		log = slog.Default()
	}

	return &Gate{tokens: tokens, users: users, log: log, obs: obs}
}

// Check runs the whole pipeline for one Authorization header value:
// presence, optional "Bearer " prefix, signature and expiry, user lookup.
func (g *Gate) Check(ctx context.Context, authHeader string) GateResult {
	raw := strings.TrimSpace(authHeader)
	if raw == "" {
		return GateResult{Reason: ReasonNoToken}
	}

	raw = strings.TrimSpace(stripBearer(raw))
	if raw == "" {
		return GateResult{Reason: ReasonNoToken}
	}

	claims, err := g.tokens.VerifyToken(raw)
	if err != nil {
		return GateResult{Reason: ReasonInvalidToken, Err: err}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, userLookupTimeout)
	defer cancel()

	u, err := g.users.GetByID(lookupCtx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return GateResult{Reason: ReasonUserNotFound, Err: err}
		}
		return GateResult{Reason: ReasonLookupFailed, Err: err}
	}

	return GateResult{User: u}
}

func (g *Gate) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		res := g.Check(c.Request.Context(), c.GetHeader("Authorization"))

		if !res.OK() {
			attrs := []any{"reason", res.Reason.Code(), "path", c.Request.URL.Path}
			if res.Err != nil {
				attrs = append(attrs, "err", res.Err)
			}
			g.log.WarnContext(c.Request.Context(), "authentication failed", attrs...)

			if g.obs != nil {
				g.obs.ObserveAuthFailure(res.Reason.Code())
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Please authenticate",
				"error":   string(res.Reason),
			})
			return
		}

		SetUser(c, res.User)

		c.Next()
	}
}

// SetUser stashes the identity on both the gin context and the request
// context.
func SetUser(c *gin.Context, u user.User) {
	c.Set(ctxUserKey, u)
	c.Request = c.Request.WithContext(actorctx.WithUser(c.Request.Context(), u))
}

// UserFromContext returns the user the gate attached, so handlers don't
// need to know the magic key.
func UserFromContext(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return user.User{}, false
	}
	u, ok := v.(user.User)
	return u, ok && u.ID != ""
}

func stripBearer(header string) string {
	const prefix = "Bearer "

	if len(header) >= len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return header
}
