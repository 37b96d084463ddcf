// Package rest wires the HTTP surface: middleware stack, route tree, and
// health endpoints.
package rest

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"moji-backend/application/services"
	"moji-backend/interfaces/http/rest/handlers"
	"moji-backend/interfaces/http/rest/middleware"
	"moji-backend/pkg/auth"
	"moji-backend/pkg/common"
)

// Router creates and configures the HTTP router
type Router struct {
	authService       *services.AuthService
	entryService      *services.EntryService
	gardenService     *services.GardenService
	literatureService *services.LiteratureService
	statsService      *services.StatsService
	tokens            *auth.Service
	db                *sql.DB
	enableCORS        bool
	logger            *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	authService *services.AuthService,
	entryService *services.EntryService,
	gardenService *services.GardenService,
	literatureService *services.LiteratureService,
	statsService *services.StatsService,
	tokens *auth.Service,
	db *sql.DB,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		authService:       authService,
		entryService:      entryService,
		gardenService:     gardenService,
		literatureService: literatureService,
		statsService:      statsService,
		tokens:            tokens,
		db:                db,
		enableCORS:        enableCORS,
		logger:            logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health checks
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	authHandler := handlers.NewAuthHandler(rt.authService, rt.logger)
	entryHandler := handlers.NewEntryHandler(rt.entryService, rt.logger)
	gardenHandler := handlers.NewGardenHandler(rt.gardenService, rt.logger)
	literatureHandler := handlers.NewLiteratureHandler(rt.literatureService, rt.logger)
	statsHandler := handlers.NewStatsHandler(rt.statsService, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.tokens, rt.logger))

			r.Get("/auth/profile", authHandler.Profile)

			r.Route("/entries", func(r chi.Router) {
				r.Post("/", entryHandler.Create)
				r.Get("/", entryHandler.List)
				r.Get("/{entryID}", entryHandler.Get)
				r.Delete("/{entryID}", entryHandler.Delete)
			})

			r.Get("/garden", gardenHandler.Get)
			r.Get("/garden/plants", gardenHandler.Get)

			r.Route("/authors", func(r chi.Router) {
				r.Get("/", literatureHandler.ListAuthors)
				r.Get("/{authorID}", literatureHandler.GetAuthor)
				r.Post("/", literatureHandler.CreateAuthor)
			})
			r.Post("/works", literatureHandler.CreateWork)
			r.Get("/passages/{passageID}", literatureHandler.GetPassage)
			r.Post("/passages", literatureHandler.CreatePassage)

			r.Route("/stats", func(r chi.Router) {
				r.Get("/overview", statsHandler.Overview)
				r.Get("/emotion-curve", statsHandler.EmotionCurve)
				r.Get("/timeline", statsHandler.Timeline)
			})
		})
	})

	return router
}

// healthCheck reports process liveness.
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck reports whether the database is reachable.
func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	if err := rt.db.PingContext(r.Context()); err != nil {
		rt.logger.Error("readiness check failed", zap.Error(err))
		common.RespondError(w, http.StatusServiceUnavailable, "NOT_READY", "database unavailable")
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
