// Package api exposes a small read-only HTTP status API over the run and
// session statistics history recorded in internal/store: health, run
// listing, and per-run session detail, guarded by a bearer token.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/aalto-speech/fi-parliament-tools/internal/api/docs"
	"github.com/aalto-speech/fi-parliament-tools/internal/auth"
	"github.com/aalto-speech/fi-parliament-tools/internal/store"
	"github.com/aalto-speech/fi-parliament-tools/pkg/logger"
)

// Server serves the status API.
type Server struct {
	store  *store.Store
	issuer *auth.Issuer
	router *gin.Engine
	http   *http.Server
}

// New builds a Server bound to addr, reading from st and checking bearer
// tokens with issuer.
func New(addr string, st *store.Store, issuer *auth.Issuer) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginLogger())

	s := &Server{store: st, issuer: issuer, router: r}

	r.GET("/healthz", s.handleHealthz)

	authed := r.Group("/")
	authed.Use(s.bearerAuth())
	authed.GET("/runs", s.handleListRuns)
	authed.GET("/runs/:id", s.handleGetRun)
	authed.GET("/runs/:id/sessions", s.handleListSessions)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.http = &http.Server{Addr: addr, Handler: r}
	return s
}

// ginLogger logs each request through pkg/logger instead of gin's default
// writer, matching the module's single structured-log sink.
func ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}

// ListenAndServe starts the HTTP server; it blocks until the server stops
// or returns an error.
func (s *Server) ListenAndServe() error {
	logger.Info("status API starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("status API: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
