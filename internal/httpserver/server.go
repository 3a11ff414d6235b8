package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ServiceName = "faith-journey-bot"

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionCounter reports how many journeys are loaded.
type SessionCounter interface {
	Len() int
}

// HTTPServer exposes liveness and readiness probes.
type HTTPServer struct {
	gin      *gin.Engine
	logger   *zap.Logger
	addr     string
	db       Pinger
	sessions SessionCounter
}

// New creates a new HTTPServer. db may be nil when no database is used.
func New(logger *zap.Logger, addr string, production bool, db Pinger, sessions SessionCounter) *HTTPServer {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &HTTPServer{
		gin:      gin.New(),
		logger:   logger,
		addr:     addr,
		db:       db,
		sessions: sessions,
	}
	srv.gin.Use(gin.Recovery())
	srv.mapHandlers()

	return srv
}

func (srv *HTTPServer) mapHandlers() {
	srv.gin.GET("/healthz", srv.liveCheck)
	srv.gin.GET("/readyz", srv.readyCheck)
}

// Handler returns the underlying http.Handler.
func (srv *HTTPServer) Handler() http.Handler {
	return srv.gin
}

// Run serves until ctx is done, then shuts down gracefully.
func (srv *HTTPServer) Run(ctx context.Context) error {
	s := &http.Server{
		Addr:              srv.addr,
		Handler:           srv.gin,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.logger.Info("health server started", zap.String("addr", srv.addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	srv.logger.Info("health server stopped")
	return nil
}

func (srv *HTTPServer) liveCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "alive",
		"service": ServiceName,
	})
}

func (srv *HTTPServer) readyCheck(c *gin.Context) {
	body := gin.H{
		"status":  "ready",
		"service": ServiceName,
	}
	if srv.sessions != nil {
		body["journeys"] = srv.sessions.Len()
	}

	if srv.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := srv.db.Ping(ctx); err != nil {
			srv.logger.Warn("readiness check failed", zap.Error(err))
			body["status"] = "unavailable"
			body["error"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}

	c.JSON(http.StatusOK, body)
}
