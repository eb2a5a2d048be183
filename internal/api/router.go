package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kgrant/travel-itinerary-api/internal/api/handlers"
	"github.com/kgrant/travel-itinerary-api/internal/api/middleware"
	"github.com/kgrant/travel-itinerary-api/internal/api/response"
	"github.com/kgrant/travel-itinerary-api/internal/cache"
	"github.com/kgrant/travel-itinerary-api/internal/config"
	"github.com/kgrant/travel-itinerary-api/internal/service"
	"github.com/rs/cors"
)

func NewRouter(services *service.Services, store cache.Store, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		response.JSON(w, http.StatusOK, response.Envelope{
			Success: true,
			Message: "Travel Itinerary API is running",
			Data:    map[string]string{"timestamp": time.Now().Format(time.RFC3339)},
		})
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	itineraryHandler := handlers.NewItineraryHandler(services.Itinerary)

	cacheReads := middleware.CacheResponse(store, cfg.CacheTTL, middleware.UserCacheKey)
	cacheShared := middleware.CacheResponse(store, cfg.CacheTTL, middleware.SharedCacheKey)
	invalidate := middleware.InvalidateCache(store, middleware.UserNamespace, middleware.SharedNamespace)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Token))
				r.Get("/profile", authHandler.Profile)
			})
		})

		r.Route("/itineraries", func(r chi.Router) {
			// Public share route, outside the auth gate, cached under its
			// own namespace.
			r.With(cacheShared).Get("/share/{shareableId}", itineraryHandler.GetShared)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Token))

				r.With(invalidate).Post("/", itineraryHandler.Create)
				r.With(cacheReads).Get("/", itineraryHandler.List)
				r.With(cacheReads).Get("/{id}", itineraryHandler.Get)
				r.With(invalidate).Put("/{id}", itineraryHandler.Update)
				r.With(invalidate).Delete("/{id}", itineraryHandler.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, http.StatusNotFound, "Route not found")
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	return corsHandler.Handler(r)
}
