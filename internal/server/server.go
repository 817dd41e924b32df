package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/echovoice/apiserver/config"
	"github.com/echovoice/apiserver/internal/db"
	"github.com/echovoice/apiserver/internal/events"
	"github.com/echovoice/apiserver/internal/handlers"
	"github.com/echovoice/apiserver/internal/services"
	"github.com/echovoice/apiserver/internal/store"
	"github.com/echovoice/apiserver/internal/token"
)

// Server wraps the HTTP server, router and owned resources.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	publisher  *events.Publisher
}

// New constructs a Server with all dependencies wired. The database
// connection and the JWT secret are hard requirements; the event broker
// is optional and publishing degrades to a no-op without one.
func New(ctx context.Context, logger *slog.Logger, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	tokens, err := token.NewService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	if err != nil {
		_ = dbConn.Close()
		return nil, errors.New("JWT_SECRET_KEY is required")
	}

	publisher, err := newPublisher(ctx, logger, cfg.Events)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("connect event broker: %w", err)
	}

	userService := services.NewUserService(store.NewUserRepository(dbConn))
	onboardingService := services.NewOnboardingService(store.NewOnboardingRepository(dbConn))
	audioService := services.NewAudioService(store.NewAudioRepository(dbConn))

	authHandler := handlers.NewAuthHandler(logger, userService, tokens, publisher, cfg.Auth.BcryptCost)
	onboardingHandler := handlers.NewOnboardingHandler(logger, onboardingService, publisher)
	audioHandler := handlers.NewAudioHandler(logger, audioService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Get("/", handlers.Root)
	router.Get("/health", handlers.Health)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authHandler)
	})
	router.Route("/api/onboarding", func(r chi.Router) {
		handlers.OnboardingRouter(r, onboardingHandler)
	})
	router.Route("/api/audio", func(r chi.Router) {
		handlers.AudioRouter(r, audioHandler)
	})
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"route not found"}`))
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8000
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		publisher:  publisher,
	}, nil
}

func newPublisher(ctx context.Context, logger *slog.Logger, cfg config.EventsConfig) (*events.Publisher, error) {
	switch cfg.Backend {
	case "":
		return nil, nil
	case "rabbitmq":
		backend, err := events.NewRabbitMQBackend(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return events.NewPublisher(logger, backend), nil
	case "pubsub":
		backend, err := events.NewPubSubBackend(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return events.NewPublisher(logger, backend), nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown and releases owned resources.
func (s *Server) Shutdown() error {
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
