package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserRepository implements UserRepository using pgxpool.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository backed by the given connection pool.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &PostgresUserRepository{pool: pool}
}

// GetByUsername retrieves a single user by username.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT username, password, id
		FROM users
		WHERE username = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, username).Scan(&u.Username, &u.Password, &u.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &u, nil
}
