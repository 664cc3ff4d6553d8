package employee

import "time"

// Employee represents a row in the employees table.
//
// SupervisorID is nil for employees without a supervisor. The stored record
// never carries a direct-reports count; that value is derived at read time.
type Employee struct {
	ID           string
	Name         string
	Email        string
	SupervisorID *string
	LastUpdated  time.Time
}
