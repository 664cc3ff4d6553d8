package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrInvalidCredentials is returned for both an unknown username and a wrong
// password, so that login responses cannot be used to enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Verification failures, in the order they are checked.
var (
	ErrTokenMissing = errors.New("token not provided")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Service provides authentication operations.
type Service struct {
	users         UserRepository
	tokens        TokenRepository
	defaultTTLMin int
	now           func() time.Time
}

// NewService creates a new auth Service. defaultTTLMinutes is the token
// lifetime applied when a login request does not specify one.
func NewService(users UserRepository, tokens TokenRepository, defaultTTLMinutes int) *Service {
	return &Service{
		users:         users,
		tokens:        tokens,
		defaultTTLMin: defaultTTLMinutes,
		now:           time.Now,
	}
}

// GenerateToken creates an opaque token value: 32 random bytes encoded as
// unpadded base64url.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Login checks the supplied credentials against the users table and, on
// success, issues and persists a fresh token. expirationMinutes overrides the
// default lifetime when non-nil; no upper bound is enforced. A user may hold
// any number of concurrently valid tokens.
func (s *Service) Login(ctx context.Context, username, password string, expirationMinutes *int) (*Session, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if u.Password != password {
		return nil, ErrInvalidCredentials
	}

	minutes := s.defaultTTLMin
	if expirationMinutes != nil {
		minutes = *expirationMinutes
	}

	value, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	expiresAt := s.now().Unix() + int64(minutes)*60

	token := &Token{
		Value:     value,
		Username:  u.Username,
		UserID:    u.ID,
		ExpiresAt: expiresAt,
	}

	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, fmt.Errorf("persisting token: %w", err)
	}

	return &Session{
		Token:             value,
		ExpiresAt:         expiresAt,
		ExpirationMinutes: minutes,
	}, nil
}

// Verify resolves a raw token value to the Identity bound at issuance.
// Failures are reported as ErrTokenMissing, ErrTokenInvalid or ErrTokenExpired,
// checked in that order. Store failures during lookup are logged and folded
// into ErrTokenInvalid rather than surfaced as a distinct outcome.
func (s *Service) Verify(ctx context.Context, value string) (*Identity, error) {
	if strings.TrimSpace(value) == "" {
		return nil, ErrTokenMissing
	}

	t, err := s.tokens.GetByValue(ctx, value)
	if err != nil {
		if !errors.Is(err, ErrTokenNotFound) {
			slog.Error("token lookup failed", "error", err)
		}
		return nil, ErrTokenInvalid
	}

	if t.ExpiresAt < s.now().Unix() {
		return nil, ErrTokenExpired
	}

	return &Identity{
		UserID:   t.UserID,
		Username: t.Username,
	}, nil
}
