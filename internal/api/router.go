package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/reelreview-be/internal/api/handlers"
	"github.com/isdelr/reelreview-be/internal/auth"
	"github.com/isdelr/reelreview-be/internal/config"
	"github.com/isdelr/reelreview-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	tokens *auth.Manager,
	userService services.UserServiceProvider,
	movieService services.MovieServiceProvider,
	aggregationService services.AggregationServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	movieHandler := handlers.NewMovieHandler(movieService, aggregationService)
	reviewHandler := handlers.NewReviewHandler(aggregationService)

	// Public routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(tokens.Middleware())

		r.Get("/users/me", authHandler.Me)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", movieHandler.GetAll)
			r.Post("/", movieHandler.Create)
			r.Post("/search", movieHandler.Search)
			r.Get("/title/{title}", movieHandler.GetByTitle)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", movieHandler.Get)
				r.Put("/", movieHandler.Update)
				r.Delete("/", movieHandler.Delete)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.GetAll)
			r.Post("/", reviewHandler.Create)
			r.Get("/{movieId}", reviewHandler.GetForMovie)
		})
	})

	return r
}
