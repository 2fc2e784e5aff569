package user

import (
	"errors"
	"strings"
	"time"

	"github.com/inkwell/blogapi/internal/domain/ids"
	"github.com/inkwell/blogapi/internal/security"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("username or email already exists")
)

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"` // never expose hash in JSON
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Author is the slice of a user copied onto the posts and comments they write.
type Author struct {
	ID       string `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// New builds a user ready to be stored. The password is hashed here, before
// anything reaches the store, so no plaintext ever leaves this function.
func New(req RegisterRequest) (User, error) {
	username := strings.TrimSpace(req.Username)
	email := NormalizeEmail(req.Email)

	if username == "" || email == "" || req.Password == "" {
		return User{}, errors.New("username, email and password are required")
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()

	return User{
		ID:           ids.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NormalizeEmail is the one form an email is stored and looked up in. Stores
// compare emails exactly.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u User) ComparePassword(plain string) bool {
	return security.CheckPassword(u.PasswordHash, plain) == nil
}

func (u User) AsAuthor() Author {
	return Author{ID: u.ID, Username: u.Username}
}
