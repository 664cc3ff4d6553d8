package auth_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdir/staffdir/internal/auth"
)

// --- Mock repositories ---

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*auth.User, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, auth.ErrUserNotFound
}

// memTokenRepo is an in-memory TokenRepository for round-trip tests.
type memTokenRepo struct {
	tokens map[string]*auth.Token
	saveFn func(ctx context.Context, token *auth.Token) error
	getFn  func(ctx context.Context, value string) (*auth.Token, error)
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]*auth.Token{}}
}

func (m *memTokenRepo) Save(ctx context.Context, token *auth.Token) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, token)
	}
	copied := *token
	m.tokens[token.Value] = &copied
	return nil
}

func (m *memTokenRepo) GetByValue(ctx context.Context, value string) (*auth.Token, error) {
	if m.getFn != nil {
		return m.getFn(ctx, value)
	}
	t, ok := m.tokens[value]
	if !ok {
		return nil, auth.ErrTokenNotFound
	}
	return t, nil
}

// --- Helpers ---

func aliceRepo() *mockUserRepo {
	return &mockUserRepo{
		getByUsernameFn: func(_ context.Context, username string) (*auth.User, error) {
			if username != "alice" {
				return nil, auth.ErrUserNotFound
			}
			return &auth.User{Username: "alice", Password: "p1", ID: "u1"}, nil
		},
	}
}

func intPtr(n int) *int { return &n }

// --- GenerateToken ---

func TestGenerateToken_Format(t *testing.T) {
	t.Parallel()

	token, err := auth.GenerateToken()
	require.NoError(t, err)

	// 32 random bytes encode to 43 unpadded base64url characters.
	assert.Len(t, token, 43)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9_-]+$`), token)
}

func TestGenerateToken_Uniqueness(t *testing.T) {
	t.Parallel()

	t1, err := auth.GenerateToken()
	require.NoError(t, err)
	t2, err := auth.GenerateToken()
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}

// --- Login ---

func TestLogin_Success_DefaultExpiry(t *testing.T) {
	t.Parallel()

	tokens := newMemTokenRepo()
	svc := auth.NewService(aliceRepo(), tokens, 5)

	before := time.Now().Unix()
	session, err := svc.Login(context.Background(), "alice", "p1", nil)
	after := time.Now().Unix()
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, 5, session.ExpirationMinutes)
	assert.GreaterOrEqual(t, session.ExpiresAt, before+5*60)
	assert.LessOrEqual(t, session.ExpiresAt, after+5*60)

	stored, err := tokens.GetByValue(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, session.ExpiresAt, stored.ExpiresAt)
}

func TestLogin_Success_RequestedExpiry(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(aliceRepo(), newMemTokenRepo(), 5)

	before := time.Now().Unix()
	session, err := svc.Login(context.Background(), "alice", "p1", intPtr(10))
	after := time.Now().Unix()
	require.NoError(t, err)

	assert.Equal(t, 10, session.ExpirationMinutes)
	assert.GreaterOrEqual(t, session.ExpiresAt, before+10*60)
	assert.LessOrEqual(t, session.ExpiresAt, after+10*60)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(aliceRepo(), newMemTokenRepo(), 5)

	_, err := svc.Login(context.Background(), "alice", "wrong", nil)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownUser_SameError(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(aliceRepo(), newMemTokenRepo(), 5)

	_, unknownErr := svc.Login(context.Background(), "bob", "p1", nil)
	_, wrongErr := svc.Login(context.Background(), "alice", "wrong", nil)

	// Unknown username and wrong password are indistinguishable.
	assert.ErrorIs(t, unknownErr, auth.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLogin_UserLookupFailure(t *testing.T) {
	t.Parallel()

	users := &mockUserRepo{
		getByUsernameFn: func(context.Context, string) (*auth.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := auth.NewService(users, newMemTokenRepo(), 5)

	_, err := svc.Login(context.Background(), "alice", "p1", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_TokenSaveFailure(t *testing.T) {
	t.Parallel()

	tokens := newMemTokenRepo()
	tokens.saveFn = func(context.Context, *auth.Token) error {
		return errors.New("connection refused")
	}
	svc := auth.NewService(aliceRepo(), tokens, 5)

	_, err := svc.Login(context.Background(), "alice", "p1", nil)
	assert.Error(t, err)
}

func TestLogin_MultipleConcurrentTokens(t *testing.T) {
	t.Parallel()

	tokens := newMemTokenRepo()
	svc := auth.NewService(aliceRepo(), tokens, 5)

	first, err := svc.Login(context.Background(), "alice", "p1", nil)
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), "alice", "p1", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)

	_, err = svc.Verify(context.Background(), first.Token)
	assert.NoError(t, err)
	_, err = svc.Verify(context.Background(), second.Token)
	assert.NoError(t, err)
}

// --- Verify ---

func TestVerify_MissingToken(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(aliceRepo(), newMemTokenRepo(), 5)

	_, err := svc.Verify(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrTokenMissing)

	_, err = svc.Verify(context.Background(), "   ")
	assert.ErrorIs(t, err, auth.ErrTokenMissing)
}

func TestVerify_UnknownToken(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(aliceRepo(), newMemTokenRepo(), 5)

	_, err := svc.Verify(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestVerify_ExpiredToken(t *testing.T) {
	t.Parallel()

	tokens := newMemTokenRepo()
	require.NoError(t, tokens.Save(context.Background(), &auth.Token{
		Value:     "stale",
		Username:  "alice",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	}))
	svc := auth.NewService(aliceRepo(), tokens, 5)

	_, err := svc.Verify(context.Background(), "stale")
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
	assert.NotErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestVerify_StoreFailure_FoldsIntoInvalid(t *testing.T) {
	t.Parallel()

	tokens := newMemTokenRepo()
	tokens.getFn = func(context.Context, string) (*auth.Token, error) {
		return nil, errors.New("connection refused")
	}
	svc := auth.NewService(aliceRepo(), tokens, 5)

	_, err := svc.Verify(context.Background(), "whatever")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestLoginVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(aliceRepo(), newMemTokenRepo(), 5)

	session, err := svc.Login(context.Background(), "alice", "p1", nil)
	require.NoError(t, err)

	identity, err := svc.Verify(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, "alice", identity.Username)
}
