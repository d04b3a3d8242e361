// Package api implements the ReadAPI: the downstream-facing HTTP surface
// for prices, forecasts, FCAS, the trading ledger and BESS optimisation,
// plus the WebSocket upgrade into internal/hub. Router setup, middleware
// ordering and the request-logging shape are adapted directly from the
// teacher's internal/server.Server.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aristath/nem-sentinel/internal/authclient"
	"github.com/aristath/nem-sentinel/internal/cache"
	"github.com/aristath/nem-sentinel/internal/hub"
	"github.com/aristath/nem-sentinel/internal/ledger"
	"github.com/aristath/nem-sentinel/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Config bundles everything the ReadAPI needs to construct its router.
type Config struct {
	Port         int
	Log          zerolog.Logger
	DB           *storage.Relational
	Ledger       *ledger.Ledger
	Hub          *hub.Hub
	Auth         *authclient.Client
	Cache        *cache.TieredCache
	Coalescer    *cache.RequestCoalescer
	CORSOrigins  []string
	DevMode      bool
}

// Server is the ReadAPI HTTP server.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger

	db     *storage.Relational
	ledger *ledger.Ledger
	hub    *hub.Hub
	auth   *authclient.Client
	cache  *cache.TieredCache
	coal   *cache.RequestCoalescer
}

// New builds a Server and wires its full route table.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "api").Logger(),
		db:     cfg.DB,
		ledger: cfg.Ledger,
		hub:    cfg.Hub,
		auth:   cfg.Auth,
		cache:  cfg.Cache,
		coal:   cfg.Coalescer,
	}

	s.setupMiddleware(cfg.CORSOrigins, cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // long enough for WebSocket upgrades to linger
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware(origins []string, devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	if len(origins) == 0 {
		origins = []string{"http://localhost:*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleServiceInfo)
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/ws", s.handleWebSocket) // auth is optional query-param based, handled inline

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/prices/latest", s.handleLatestPrices)
			r.Get("/prices/history/{region}", s.handlePriceHistory)
			r.Get("/forward/{region}", s.handleForward)
			r.Get("/fcas/latest", s.handleLatestFCAS)
			r.Get("/demand/forecast", s.handleDemandForecast)

			r.Get("/trading/positions", s.handleListPositions)
			r.Post("/trading/position", s.handleOpenPosition)
			r.Post("/trading/close/{id}", s.handleClosePosition)

			r.Post("/bess/optimize", s.handleBESSOptimize)
		})
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

func (s *Server) handleServiceInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "nem-sentinel-api",
		"status":  "ok",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"service":   "nem-sentinel-api",
		"timestamp": time.Now().UTC(),
	})
}

// Start runs the server until it errors or is shut down.
func (s *Server) Start() error {
	s.log.Info().Int("port", 0).Str("addr", s.server.Addr).Msg("starting read api")
	return s.server.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
