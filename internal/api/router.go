package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	// Public routes
	r.Get("/health", apiHandler.HealthHandler)

	// Token-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(apiHandler.AuthMiddleware)

		r.Post("/ask", apiHandler.AskHandler)
	})

	return r
}
