package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password does not match")

// Cost is the bcrypt work factor. Tests lower it.
var Cost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt hash. Passwords longer than bcrypt's
// 72 byte input are rejected rather than silently truncated.
func HashPassword(plain string) (string, error) {
	if len(plain) > 72 {
		return "", bcrypt.ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func CheckPassword(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}

	return err
}
