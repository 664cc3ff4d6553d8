package handler

import (
	"context"
	"net/http"

	"github.com/staffdir/staffdir/internal/api/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      Pinger
	tokens  Pinger
	version string
}

// NewHealthHandler creates a new HealthHandler. db is the employee/user store,
// tokens the token store.
func NewHealthHandler(db, tokens Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		tokens:  tokens,
		version: version,
	}
}

type storeStatus struct {
	Connected bool `json:"connected"`
}

type healthData struct {
	Status   string      `json:"status"`
	Version  string      `json:"version"`
	Postgres storeStatus `json:"postgres"`
	Redis    storeStatus `json:"redis"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dbOK := h.db.Ping(r.Context()) == nil
	tokensOK := h.tokens.Ping(r.Context()) == nil

	status := "healthy"
	if !dbOK || !tokensOK {
		status = "degraded"
	}

	response.JSON(w, http.StatusOK, healthData{
		Status:   status,
		Version:  h.version,
		Postgres: storeStatus{Connected: dbOK},
		Redis:    storeStatus{Connected: tokensOK},
	})
}
