package validation

import "strings"

// EmployeeRequest mirrors the fields needed for create/update employee validation.
type EmployeeRequest struct {
	Name  string
	Email string
}

// ValidateEmployeeRequest validates the fields of a create or update employee
// request. Email is checked for presence only; the directory has never
// enforced a format on it.
func ValidateEmployeeRequest(req EmployeeRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, FieldError{Field: "nombre", Message: "nombre is required"})
	}
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}

	return errs
}
