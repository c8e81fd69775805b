package soak

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-selectq/pkg/common/http/handler"
	"github.com/huynhanx03/go-selectq/pkg/settings"
)

const shutdownTimeout = 5 * time.Second

// StatsRequest is the query of GET /stats.
type StatsRequest struct {
	Detail bool `form:"detail"`
}

// Server exposes read-only counters of a running soak over HTTP.
type Server struct {
	runner *Runner
	cfg    settings.Server
	log    *zap.Logger
	engine *gin.Engine
}

// NewServer builds the stats routes for runner.
func NewServer(runner *Runner, cfg settings.Server, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		runner: runner,
		cfg:    cfg,
		log:    log,
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/stats", handler.Wrap(s.stats))
}

func (s *Server) stats(_ context.Context, req *StatsRequest) (Stats, error) {
	return s.runner.Stats(req.Detail), nil
}

// Handler returns the HTTP handler serving the routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the listen address from configuration.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("stats server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "stats server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "stats server shutdown")
	}
	return nil
}
