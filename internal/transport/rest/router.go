package rest

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/wrkforce/employee-management/internal/employee"
	"github.com/wrkforce/employee-management/internal/transport/middleware"
	"github.com/wrkforce/employee-management/internal/transport/swagger"
	"github.com/wrkforce/employee-management/internal/user"
)

// RegisterAllRoutes mounts the API under /api/v1 plus the root identity,
// health and documentation endpoints.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, userHandler *user.Handler, employeeHandler *employee.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/", rootHandler)

	// Serve OpenAPI spec at root, swagger UI alongside it
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if userHandler != nil {
			r.Route("/users", func(ur chi.Router) {
				ur.Post("/", userHandler.CreateUser)
				ur.Get("/", userHandler.ListUsers)
				ur.Get("/{id}", userHandler.GetUser)
				ur.Put("/{id}", userHandler.UpdateUser)
				ur.Delete("/{id}", userHandler.DeleteUser)
			})
		}

		if employeeHandler != nil {
			r.Route("/employees", func(er chi.Router) {
				er.Post("/", employeeHandler.CreateEmployee)
				er.Get("/", employeeHandler.ListEmployees)
				er.Get("/{id}", employeeHandler.GetEmployee)
				er.Put("/{id}", employeeHandler.UpdateEmployee)
				er.Delete("/{id}", employeeHandler.DeleteEmployee)
				er.Get("/{id}/subordinates", employeeHandler.Subordinates)
			})
		}
	})
}

// rootHandler reports service identity.
func rootHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"message": "Employee Management System API",
		"docs":    "/swagger/index.html",
		"openapi": "/openapi.yml",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
