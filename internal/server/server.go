package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/jonathan/career-guide/internal/auth"
	"github.com/jonathan/career-guide/internal/config"
	"github.com/jonathan/career-guide/internal/counsel"
	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/layout"
	"github.com/jonathan/career-guide/internal/llm"
	"github.com/jonathan/career-guide/internal/metrics"
	"github.com/jonathan/career-guide/internal/profile"
	"github.com/jonathan/career-guide/internal/rendering"
	"github.com/jonathan/career-guide/internal/server/middleware"
	"github.com/jonathan/career-guide/internal/server/ratelimit"
	"golang.org/x/sync/singleflight"
)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	store          db.Store
	allowedOrigins []string
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	authHandler    *AuthHandler

	profiles  *profile.Repository
	engine    *layout.Engine
	exporter  *rendering.Exporter
	counselor *counsel.Client

	// recommendations collapses identical in-flight assessment submissions.
	recommendations singleflight.Group
}

// Config holds server configuration
type Config struct {
	App   *config.Config
	Store db.Store          // Opened from App.StoreURL when nil
	LLM   llm.Client        // Nil when no API key is configured
	JWT   *config.JWTConfig // Read from JWT_SECRET when nil
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	app := cfg.App
	if app == nil {
		defaults := config.Defaults()
		app = &defaults
	}

	store := cfg.Store
	if store == nil {
		var err error
		if store, err = db.Open(context.Background(), app.StoreURL); err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
	}

	jwtConfig := cfg.JWT
	if jwtConfig == nil {
		var err error
		if jwtConfig, err = config.NewJWTConfig(); err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
	}

	limitConfig, err := ratelimit.LoadConfig(app.RateLimitRPS, app.RateLimitBurst)
	if err != nil {
		return nil, err
	}

	exporter, err := rendering.NewExporter(app.PDFEngine)
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:          store,
		allowedOrigins: app.AllowedOrigins,
		rateLimiter:    ratelimit.NewLimiter(limitConfig),
		jwtService:     NewJWTService(jwtConfig),
		profiles:       profile.NewRepository(store),
		engine:         layout.NewEngine(nil),
		exporter:       exporter,
		counselor:      counsel.NewClient(cfg.LLM),
	}
	s.authHandler = NewAuthHandler(auth.NewStore(store), s.jwtService)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	// Authentication
	mux.HandleFunc("POST /auth/signup", s.authHandler.Signup)
	mux.HandleFunc("POST /auth/signin", s.authHandler.Signin)
	mux.Handle("GET /me", s.requireAuth(s.authHandler.Me))

	// Profile and resume export
	mux.Handle("GET /profile", s.requireAuth(s.handleGetProfile))
	mux.Handle("PUT /profile", s.requireAuth(s.handlePutProfile))
	mux.Handle("PUT /profile/photo", s.requireAuth(s.handlePutPhoto))
	mux.Handle("DELETE /profile/photo", s.requireAuth(s.handleDeletePhoto))
	mux.Handle("GET /profile/resume", s.requireAuth(s.handleResumePDF))
	mux.Handle("GET /profile/resume.html", s.requireAuth(s.handleResumeHTML))

	// Counseling
	mux.Handle("POST /recommendations", s.requireAuth(s.handleRecommendations))
	mux.Handle("GET /chat", s.requireAuth(s.handleGetChat))
	mux.Handle("POST /chat", s.requireAuth(s.handlePostChat))
	mux.Handle("DELETE /chat", s.requireAuth(s.handleClearChat))

	// Preferences
	mux.HandleFunc("GET /themes", s.handleThemes)
	mux.HandleFunc("GET /locales", s.handleLocales)
	mux.HandleFunc("GET /locales/{code}", s.handleLocale)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", app.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(metrics.Middleware(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Generative calls and Chrome printing
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close stops background work and closes the store.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if err := s.store.Close(); err != nil {
		log.Printf("Error closing store: %v", err)
	}
}

// requireAuth wraps h with bearer token authentication.
func (s *Server) requireAuth(h http.HandlerFunc) http.Handler {
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// withCORS adds CORS headers for the configured origins
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (slices.Contains(s.allowedOrigins, "*") || slices.Contains(s.allowedOrigins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept-Language")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, Content-Language")
		}
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to a status and writes it. Server errors are logged.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s failed: %v", r.Method, r.URL.Path, err)
	}
	s.errorResponse(w, status, errorMessage(err))
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "Invalid request body"}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return strings.TrimSpace(ip)
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
