package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/filedeck/filedeck/internal/asyncops"
	"github.com/filedeck/filedeck/internal/bookmarks"
	"github.com/filedeck/filedeck/internal/config"
	"github.com/filedeck/filedeck/internal/logging"
	"github.com/filedeck/filedeck/internal/monitoring"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	mgr     *asyncops.Manager
	store   *bookmarks.Store
	logger  *logging.Logger
	metrics *monitoring.Metrics

	defaultTimeout time.Duration
}

// New wires routes and middleware around the manager and the store.
func New(cfg *config.Config, mgr *asyncops.Manager, store *bookmarks.Store, logger *logging.Logger, metrics *monitoring.Metrics) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(Recovery(logger))
	router.Use(RequestLogger(logger))
	router.Use(CORS(DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(RateLimit(RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	if metrics != nil {
		router.Use(monitoring.Middleware(metrics))
	}

	s := &Server{
		router:         router,
		mgr:            mgr,
		store:          store,
		logger:         logger.Named("server"),
		metrics:        metrics,
		defaultTimeout: cfg.Exec.DefaultTimeout,
	}

	router.GET("/health", s.health)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
			metrics.Registry(),
			promhttp.HandlerOpts{},
		)))
	}

	router.POST("/tasks", s.submitTask)
	router.GET("/tasks/:id", s.pollTask)
	router.GET("/tasks/:id/wait", s.waitTask)
	router.POST("/tasks/:id/cancel", s.cancelTask)

	router.GET("/bookmarks", s.listBookmarks)
	router.POST("/bookmarks", s.addBookmark)
	router.GET("/bookmarks/:id", s.getBookmark)
	router.PUT("/bookmarks/:id", s.updateBookmark)
	router.DELETE("/bookmarks/:id", s.removeBookmark)
	router.POST("/bookmarks/verify", s.verifyBookmarks)

	s.httpSrv = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests. The manager is closed separately by
// the caller, after the drain, so waiting requests resolve first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.httpSrv.Shutdown(ctx)
}
