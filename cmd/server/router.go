package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/adsurf/adsurf-api/internal/api"
	apiMiddleware "github.com/adsurf/adsurf-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.provider, app.tokenService, app.logger)
	userHandler := api.NewUserHandler(app.userStore, app.logger)
	adHandler := api.NewAdHandler(app.adService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)

	r.Route("/api", func(r chi.Router) {
		// Public authentication endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/registerWithGoogle", authHandler.RegisterWithGoogle)
		r.Post("/login", authHandler.Login)
		r.Post("/resetPassword", authHandler.ResetPassword)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// User endpoints
			r.Get("/me/{id}", userHandler.GetMe)
			r.Get("/users/{id}", userHandler.ListUsers)

			// Ad endpoints
			r.Post("/createAds", adHandler.CreateAd)
			r.Get("/getAllAds", adHandler.ListPublishedAds)
			r.Get("/getMyAds", adHandler.ListMyAds)
			r.Get("/surfAds/{id}", adHandler.SurfAd)
			r.Get("/depositSatoshi/{id}", adHandler.DepositSatoshi)
			r.Put("/updateAds/{id}", adHandler.UpdateAd)
			r.Delete("/deleteAds/{id}", adHandler.DeleteAd)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
