// Package server provides the HTTP REST API for the talent matching service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/availability"
	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/fairness"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/server/ratelimit"
	"github.com/jonathan/talent-match/internal/skillmatch"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
	"github.com/jonathan/talent-match/internal/weights"
)

// Store is the persistence surface the handlers use directly. Match reads
// and writes go through the orchestrator instead.
type Store interface {
	SaveRequirement(ctx context.Context, req *types.ProjectRequirement) error
	GetRequirement(ctx context.Context, id uuid.UUID) (*types.ProjectRequirement, error)
	SaveTalent(ctx context.Context, talent *types.TalentProfile) error
	GetTalent(ctx context.Context, id uuid.UUID) (*types.TalentProfile, error)
}

// Server is the HTTP front of the matching pipeline.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       Store
	orch        *matching.Orchestrator
	validate    *validator.Validate
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
}

// New connects to the database, assembles the matching pipeline, and wires
// the routes.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	tax := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		tax, err = taxonomy.Load(cfg.TaxonomyPath, cfg.TaxonomySchemaPath)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to load taxonomy: %w", err)
		}
	}

	orch := matching.NewOrchestrator(matching.Deps{
		Requirements: database,
		Talents:      database,
		Bookings:     database,
		Store:        database,
		Scorer:       scoring.NewScorer(skillmatch.NewResolver(tax), availability.NewEngine()),
		Policy:       weights.NewContextPolicy(),
		Auditor:      fairness.NewAuditor(nil),
		Logger:       logger,
		Concurrency:  cfg.Workers,
		PoolCap:      cfg.MaxPoolSize,
	})

	s := newServer(orch, database, logger, ratelimit.DefaultConfig())
	s.db = database
	s.httpServer.Addr = fmt.Sprintf(":%d", cfg.Port)
	return s, nil
}

// newServer wires routes and middleware around already-built collaborators.
func newServer(orch *matching.Orchestrator, store Store, logger *zap.Logger, rlCfg *ratelimit.Config) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		store:       store,
		orch:        orch,
		validate:    validator.New(),
		rateLimiter: ratelimit.NewLimiter(rlCfg),
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /requirements", s.handleCreateRequirement)
	mux.HandleFunc("GET /requirements/{id}", s.handleGetRequirement)
	mux.HandleFunc("POST /requirements/{id}/matches", s.handleGenerateMatches)
	mux.HandleFunc("GET /requirements/{id}/matches", s.handleGetMatches)
	mux.HandleFunc("GET /requirements/{id}/statistics", s.handleGetStatistics)

	mux.HandleFunc("PATCH /matches/{id}/status", s.handleUpdateMatchStatus)

	mux.HandleFunc("POST /talents", s.handleCreateTalent)
	mux.HandleFunc("GET /talents/{id}", s.handleGetTalent)

	s.httpServer = &http.Server{
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation runs can take a while
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	if s.db != nil {
		s.db.Close()
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// withRateLimit enforces per-client limits and sets the X-RateLimit headers.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := s.rateLimiter.Allow(clientIP(r), r.Method, r.URL.Path)

		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.Reset.Unix()))
		}
		if !info.Allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
			}
			s.logger.Warn("rate limit exceeded",
				zap.String("remote", r.RemoteAddr),
				zap.String("path", r.URL.Path),
			)
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address from RemoteAddr ("IP:port").
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes data as JSON with the given status code.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error message as JSON.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
