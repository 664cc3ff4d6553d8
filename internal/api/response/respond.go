package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// messageBody is the body shape shared by plain status responses.
type messageBody struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// JSON writes a JSON response with the given status code and body.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Message writes a {"message": ...} response.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, messageBody{Message: message})
}

// MessageWithDetails writes a {"message": ..., "errors": [...]} response.
func MessageWithDetails(w http.ResponseWriter, status int, message string, details any) {
	JSON(w, status, messageBody{Message: message, Errors: details})
}

// InternalError writes an opaque 500. The triggering error belongs in the
// server log, never in the response body.
func InternalError(w http.ResponseWriter) {
	Message(w, http.StatusInternalServerError, "internal server error")
}
