package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/charitableio/charitable-api/internal/api"
	apimiddleware "github.com/charitableio/charitable-api/internal/api/middleware"
)

// setupRouter configures the route tree and middleware chain.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.accountService, app.jwtService)
	profileHandler := api.NewProfileHandler(app.accountService, app.registrationService)
	taskHandler := api.NewTaskHandler(app.accountService, app.taskService, app.logger)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/accounts", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/benefactors", profileHandler.RegisterBenefactor)
			r.Post("/charities", profileHandler.RegisterCharity)

			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/{id}/request", taskHandler.RequestTask)
			r.Post("/tasks/{id}/response", taskHandler.RespondToRequest)
			r.Post("/tasks/{id}/done", taskHandler.MarkDone)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
