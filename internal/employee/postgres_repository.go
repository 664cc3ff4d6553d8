package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// GetByID retrieves a single employee by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Employee, error) {
	query := `
		SELECT id, name, email, supervisor_id, last_updated
		FROM employees
		WHERE id = $1`

	var e Employee
	err := r.pool.QueryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.Email, &e.SupervisorID, &e.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("querying employee: %w", err)
	}

	return &e, nil
}

// List retrieves all employees. No pagination: callers accept a full scan.
func (r *PostgresRepository) List(ctx context.Context) ([]Employee, error) {
	query := `
		SELECT id, name, email, supervisor_id, last_updated
		FROM employees
		ORDER BY last_updated ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.SupervisorID, &e.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employee rows: %w", err)
	}

	if employees == nil {
		employees = []Employee{}
	}

	return employees, nil
}

// Upsert writes the full record, overwriting any existing row with the same id.
// Referential checks happen before the write and are advisory only; there is no
// transaction tying them to this statement.
func (r *PostgresRepository) Upsert(ctx context.Context, e *Employee) error {
	query := `
		INSERT INTO employees (id, name, email, supervisor_id, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			supervisor_id = EXCLUDED.supervisor_id,
			last_updated = EXCLUDED.last_updated`

	_, err := r.pool.Exec(ctx, query, e.ID, e.Name, e.Email, e.SupervisorID, e.LastUpdated)
	if err != nil {
		return fmt.Errorf("upserting employee: %w", err)
	}

	return nil
}

// CountDirectReports counts employees whose supervisor_id equals the given id.
func (r *PostgresRepository) CountDirectReports(ctx context.Context, id string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM employees
		WHERE supervisor_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting direct reports: %w", err)
	}

	return count, nil
}
