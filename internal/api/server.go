// Package api exposes the engine over a REST surface.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/twinsuns/league-hq/internal/cards/catalog"
	"github.com/twinsuns/league-hq/internal/meta"
	"github.com/twinsuns/league-hq/internal/storage"
	"github.com/twinsuns/league-hq/internal/storage/repository"
)

// Server is the REST API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	port       int
	logger     *slog.Logger

	store       *catalog.Store
	pools       repository.PoolRepository
	decks       repository.DeckRepository
	tournaments repository.TournamentRepository
	metaService *meta.Service
	db          *storage.DB
	backups     *storage.BackupManager
}

// Config holds configuration for the API server.
type Config struct {
	Port        int
	CORSOrigins []string
}

// DefaultConfig returns the default API server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:        8080,
		CORSOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
	}
}

// Deps bundles the services the handlers need. DB and Backups are optional;
// without them the system endpoints report the features unavailable.
type Deps struct {
	Store       *catalog.Store
	Pools       repository.PoolRepository
	Decks       repository.DeckRepository
	Tournaments repository.TournamentRepository
	Meta        *meta.Service
	DB          *storage.DB
	Backups     *storage.BackupManager
}

// NewServer creates an API server wired to the given services.
func NewServer(cfg *Config, deps Deps, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:      chi.NewRouter(),
		port:        cfg.Port,
		logger:      logger,
		store:       deps.Store,
		pools:       deps.Pools,
		decks:       deps.Decks,
		tournaments: deps.Tournaments,
		metaService: deps.Meta,
		db:          deps.DB,
		backups:     deps.Backups,
	}

	s.setupMiddleware(cfg)
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware(cfg *Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = DefaultConfig().CORSOrigins
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(jsonContentTypeMiddleware)
}

// jsonContentTypeMiddleware rejects non-JSON bodies on mutating methods.
func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			if r.ContentLength != 0 {
				contentType := r.Header.Get("Content-Type")
				if contentType != "application/json" && !strings.HasPrefix(contentType, "application/json;") {
					http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Start starts the API server in a goroutine.
func (s *Server) Start() {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "port", s.port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("API server error", "error", err)
		}
	}()
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the port the server is configured to listen on.
func (s *Server) Port() int {
	return s.port
}
