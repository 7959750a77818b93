// Package server provides the HTTP REST API for the job assistant.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/config"
	"github.com/jonathan/job-assistant/internal/db"
	"github.com/jonathan/job-assistant/internal/logger"
	"github.com/jonathan/job-assistant/internal/metrics"
	"github.com/jonathan/job-assistant/internal/server/ratelimit"
	"github.com/jonathan/job-assistant/internal/types"
)

const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 120 * time.Second // analysis waits on the page fetch and the LLM
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 30 * time.Second
)

// Store is the persistence the user and application routes need.
type Store interface {
	CreateUser(ctx context.Context, input *db.UserCreateInput) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	CreateApplication(ctx context.Context, input *db.ApplicationCreateInput) (*db.Application, error)
	ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]db.Application, error)
	UpdateApplication(ctx context.Context, id uuid.UUID, update db.ApplicationUpdate) (*db.Application, error)
}

// Analyzer scores resumes and drafts answers with a language model.
type Analyzer interface {
	AnalyzeResume(ctx context.Context, resume, jdURL string) (*types.ResumeScoreResult, error)
	GenerateAnswer(ctx context.Context, profile, jdURL, question string) (string, error)
}

// Matcher ranks job postings against a resume.
type Matcher interface {
	FindMatches(ctx context.Context, resumeText string, query types.Query) ([]types.ScoredJobPosting, error)
}

// Config holds server configuration
type Config struct {
	Port      int
	RateLimit config.RateLimitConfig
}

// Dependencies are the collaborators behind the routes. Store may be nil,
// in which case the persistence routes answer 503.
type Dependencies struct {
	Store    Store
	Analyzer Analyzer
	Matcher  Matcher
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	router      chi.Router
	store       Store
	analyzer    Analyzer
	matcher     Matcher
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
	now         func() time.Time
}

// New creates a new server instance
func New(cfg Config, deps Dependencies, log *zap.Logger) *Server {
	s := &Server{
		store:       deps.Store,
		analyzer:    deps.Analyzer,
		matcher:     deps.Matcher,
		rateLimiter: ratelimit.NewLimiter(ratelimit.FromConfig(cfg.RateLimit)),
		logger:      logger.OrNop(log),
		now:         time.Now,
	}

	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(withCORS)
	r.Use(s.withRateLimit)
	r.Use(metrics.Middleware())

	r.Get("/status", s.handleStatus)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.handleCreateUser)
		r.Get("/users/{id}", s.handleGetUser)

		r.Post("/applications", s.handleCreateApplication)
		r.Get("/applications/user/{id}", s.handleListApplications)
		r.Put("/applications/{id}", s.handleUpdateApplication)

		r.Post("/resume/analyze", s.handleAnalyzeResume)
		r.Post("/generate/answer", s.handleGenerateAnswer)
		r.Post("/jobs/search", s.handleSearchJobs)
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code and logs server-side failures.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads the request body into dst and validates it.
func decodeJSON(r *http.Request, dst interface{ Validate() error }) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := dst.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a valid UUID"}
	}
	return id, nil
}
