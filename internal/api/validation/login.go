package validation

import "strings"

// LoginRequest mirrors the fields needed for login validation.
type LoginRequest struct {
	Username string
	Password string
}

// ValidateLoginRequest validates the fields of a login request.
func ValidateLoginRequest(req LoginRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Username) == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	}
	if strings.TrimSpace(req.Password) == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}

	return errs
}
