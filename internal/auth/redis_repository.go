package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "token:"

// RedisTokenRepository implements TokenRepository using Redis.
//
// Records are written without a TTL on purpose: verification must distinguish
// an expired token (row present, expiry elapsed) from an unknown one (row
// absent), so expired rows have to stay readable until cleaned up externally.
type RedisTokenRepository struct {
	client *redis.Client
}

// NewTokenRepository creates a new TokenRepository backed by the given Redis client.
func NewTokenRepository(client *redis.Client) TokenRepository {
	return &RedisTokenRepository{client: client}
}

// Save stores a token record keyed by its value, overwriting unconditionally.
func (r *RedisTokenRepository) Save(ctx context.Context, token *Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshaling token: %w", err)
	}

	if err := r.client.Set(ctx, tokenKeyPrefix+token.Value, data, 0).Err(); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	return nil
}

// GetByValue retrieves a token record by its opaque value.
func (r *RedisTokenRepository) GetByValue(ctx context.Context, value string) (*Token, error) {
	data, err := r.client.Get(ctx, tokenKeyPrefix+value).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("getting token: %w", err)
	}

	var t Token
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshaling token: %w", err)
	}

	return &t, nil
}
