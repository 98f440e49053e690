// Package server exposes repository and profile analysis over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drpaneas/repolens/internal/analyzer"
	"github.com/drpaneas/repolens/internal/modernize"
	"github.com/drpaneas/repolens/internal/profile"
)

const (
	shutdownTimeout = 10 * time.Second
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RepoAnalyzer builds and narrates repository reports. *analyzer.Analyzer
// implements it.
type RepoAnalyzer interface {
	Analyze(ctx context.Context, owner, repo string, useLLMScoring bool) (*analyzer.Report, error)
	Narrate(ctx context.Context, r *analyzer.Report) string
}

// Modernizer produces modernization advice. *modernize.Advisor implements it.
type Modernizer interface {
	Analyze(ctx context.Context, owner, repo string) *modernize.Report
}

// ProfileAnalyzer builds and narrates account reports. *profile.Analyzer
// implements it.
type ProfileAnalyzer interface {
	Analyze(ctx context.Context, username string) (*profile.Report, error)
	Narrate(ctx context.Context, r *profile.Report) string
}

// Options configures the HTTP server.
type Options struct {
	RateLimit float64
	RateBurst int
	// CORSOrigins lists the browser origins allowed to call the API. "*"
	// allows any origin.
	CORSOrigins []string
}

// Server routes HTTP requests to the repository analyzer, the profile
// analyzer and the modernization advisor.
type Server struct {
	analyzer RepoAnalyzer
	advisor  Modernizer
	profiles ProfileAnalyzer
	limiter  *RateLimiter
	engine   *gin.Engine
}

// New returns a Server. The rate limiter's sweeper stops when ctx is done.
func New(ctx context.Context, a RepoAnalyzer, m Modernizer, p ProfileAnalyzer, opts Options) *Server {
	s := &Server{
		analyzer: a,
		advisor:  m,
		profiles: p,
		limiter:  NewRateLimiter(ctx, opts.RateLimit, opts.RateBurst),
	}
	s.engine = s.routes(opts.CORSOrigins)
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), requestLogger(), recovery())
	if len(origins) > 0 {
		r.Use(corsMiddleware(origins))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gh := r.Group("/github", s.limiter.Middleware())
	{
		gh.POST("/analyze", s.handleAnalyze)
		gh.POST("/modernize", s.handleModernize)
		gh.POST("/request2", s.handleRequest2)
		gh.POST("/profile", s.handleProfile)
		gh.POST("/request", s.handleRequest)
	}
	return r
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

// requestID propagates the caller's X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		slog.Log(c.Request.Context(), level, "request",
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
			"request_id", c.GetString(requestIDKey),
			"latency", time.Since(start),
		)
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered", "panic", recovered, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
