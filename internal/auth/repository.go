package auth

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when a user record is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrTokenNotFound is returned when a token record is not found.
var ErrTokenNotFound = errors.New("token not found")

// UserRepository provides read access to the users table.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// TokenRepository persists login tokens keyed by their opaque value.
type TokenRepository interface {
	Save(ctx context.Context, token *Token) error
	GetByValue(ctx context.Context, value string) (*Token, error)
}
