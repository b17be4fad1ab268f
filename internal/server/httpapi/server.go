// Package httpapi exposes the public JSON API: registration and login,
// owner-scoped ledger CRUD and the monthly summary, behind bearer-token
// and readiness middleware.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pocketledger/internal/logging"
	"pocketledger/internal/server/config"
)

type Server struct {
	addr    string
	logger  logging.Logger
	users   UserService
	entries EntryService
	ready   func() bool
	router  *gin.Engine
}

func NewServer(cfg *config.Config, logger logging.Logger, users UserService, entries EntryService, ready func() bool) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		addr:    cfg.ListenAddr,
		logger:  logger.With("module", "http_server"),
		users:   users,
		entries: entries,
		ready:   ready,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/healthz", s.healthz)

	// register/login stay outside the readiness gate
	r.POST("/register", s.register)
	r.POST("/login", s.login)

	protected := r.Group("")
	protected.Use(
		requireReady(s.ready),
		authenticate(s.users),
	)

	protected.GET("/me", s.me)
	protected.POST("/expense", s.createEntry)
	protected.GET("/expenses", s.listEntries)
	protected.PUT("/expense/:id", s.updateEntry)
	protected.DELETE("/expense/:id", s.deleteEntry)
	protected.GET("/summary", s.summary)

	return r
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
