package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/staffdir/staffdir/internal/api/response"
	"github.com/staffdir/staffdir/internal/api/validation"
	"github.com/staffdir/staffdir/internal/auth"
)

type loginRequest struct {
	Username          string `json:"username"`
	Password          string `json:"password"`
	ExpirationMinutes *int   `json:"expirationMinutes"`
}

type loginResponse struct {
	Token             string `json:"token"`
	ExpiresAt         int64  `json:"expiresAt"`
	ExpirationMinutes int    `json:"expirationMinutes"`
}

// LoginHandler handles the POST /login endpoint.
type LoginHandler struct {
	authService *auth.Service
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(authService *auth.Service) *LoginHandler {
	return &LoginHandler{authService: authService}
}

// ServeHTTP checks credentials and issues a token.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	fieldErrors := validation.ValidateLoginRequest(validation.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if len(fieldErrors) > 0 {
		response.MessageWithDetails(w, http.StatusBadRequest, "username and password are required", fieldErrors)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password, req.ExpirationMinutes)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Message(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		slog.Error("login failed", "error", err, "username", req.Username)
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{
		Token:             session.Token,
		ExpiresAt:         session.ExpiresAt,
		ExpirationMinutes: session.ExpirationMinutes,
	})
}
