package api

import (
	_ "embed"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/staffdir/staffdir/internal/api/handler"
	"github.com/staffdir/staffdir/internal/api/middleware"
	"github.com/staffdir/staffdir/internal/auth"
	"github.com/staffdir/staffdir/internal/employee"
)

//go:embed openapi.yaml
var openapiSpec []byte

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	AuthService  *auth.Service
	EmployeeRepo employee.Repository
	DBPinger     handler.Pinger
	RedisPinger  handler.Pinger
	Version      string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
// /login, /health and /openapi.json are open; the /employees subtree sits
// behind token authentication.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.CORS)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.RedisPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	openapiHandler := handler.NewOpenAPIHandler(openapiSpec)
	r.Get("/openapi.json", openapiHandler.ServeHTTP)

	loginHandler := handler.NewLoginHandler(deps.AuthService)
	r.Post("/login", loginHandler.ServeHTTP)

	employeeHandler := handler.NewEmployeeHandler(deps.EmployeeRepo)
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.Auth(deps.AuthService))
		r.Post("/", employeeHandler.CreateOrUpdate)
		r.Get("/", employeeHandler.List)
		r.Get("/{id}", employeeHandler.GetByID)
	})

	return r
}
