package employee

import (
	"context"
	"errors"
)

// ErrEmployeeNotFound is returned when an employee record is not found.
var ErrEmployeeNotFound = errors.New("employee not found")

// Repository provides operations on the employees table.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Upsert(ctx context.Context, e *Employee) error
	CountDirectReports(ctx context.Context, id string) (int, error)
}
