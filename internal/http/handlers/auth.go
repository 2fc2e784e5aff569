package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blogapi/internal/domain/user"
	"github.com/inkwell/blogapi/internal/security"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, u user.User) error
}

type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

type AuthHandler struct {
	users         UserReader
	userWriter    UserWriter
	tokens        TokenIssuer
	checkPassword func(hash, plain string) error
	log           *slog.Logger
}

func NewAuthHandler(users UserReader, userWriter UserWriter, tokens TokenIssuer, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}

	return &AuthHandler{
		users:         users,
		userWriter:    userWriter,
		tokens:        tokens,
		checkPassword: security.CheckPassword,
		log:           log,
	}
}

const invalidCredentials = "Invalid credentials"

// absentUserHash is compared against when the email is unknown, so that path
// costs one bcrypt comparison like a wrong password does.
var absentUserHash = sync.OnceValue(func() string {
	hash, err := security.HashPassword("absent-user-password")
	if err != nil {
		panic(err)
	}
	return hash
})

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req, "Registration failed") {
		return
	}

	u, err := user.New(req)

	if err != nil {
		RespondBadRequest(ctx, "Registration failed", err)
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	err = h.userWriter.Create(cctx, u)

	if err != nil {
		RespondBadRequest(ctx, "Registration failed", err)
		return
	}

	h.log.InfoContext(ctx.Request.Context(), "user registered", "user_id", u.ID)

	RespondMessage(ctx, http.StatusCreated, "User registered successfully")
}

// Login answers the same 401, after the same bcrypt work, whether the email
// is unknown or the password is wrong.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondUnauthorized(ctx, invalidCredentials)
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, user.NormalizeEmail(req.Email))

	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			h.log.ErrorContext(ctx.Request.Context(), "login lookup failed", "err", err)
			RespondInternal(ctx, "Login failed")
			return
		}

		_ = h.checkPassword(absentUserHash(), req.Password)
		RespondUnauthorized(ctx, invalidCredentials)
		return
	}

	if h.checkPassword(foundUser.PasswordHash, req.Password) != nil {
		RespondUnauthorized(ctx, invalidCredentials)
		return
	}

	token, err := h.tokens.GenerateToken(foundUser.ID)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "token generation failed", "err", err)
		RespondInternal(ctx, "Could not generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": foundUser.ID,
	})
}
