package api

import (
	"net/http"
	"time"

	"dsa_sheet/internal/api/handler"
	"dsa_sheet/internal/api/middleware"
	"dsa_sheet/internal/app/service"
	"dsa_sheet/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

// NewRouter wires every route. The auth endpoints are public; everything else
// sits behind the JWT verifier plus the authenticator that resolves the
// caller's user id.
func NewRouter(
	authService *service.AuthService,
	catalogService *service.CatalogService,
	progressService *service.ProgressService,
	corsOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Single trusted origin, credentials enabled
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Verifies token from "Authorization: Bearer T", puts claims in context
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		api.Route("/auth", authHandler.RegisterRoutes)

		// Catalog + progress routes (authenticated)
		catalogHandler := handler.NewCatalogHandler(catalogService)
		progressHandler := handler.NewProgressHandler(progressService)
		api.Group(func(authed chi.Router) {
			authed.Use(middleware.Authenticator)
			authed.Get("/topics", catalogHandler.ListTopics)
			authed.Get("/problems", catalogHandler.ListProblems)
			authed.Get("/progress", progressHandler.ListProgress)
			authed.Post("/progress", progressHandler.UpdateProgress)
		})
	})

	return r
}
