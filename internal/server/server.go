// Package server wires configuration, logging, metrics, and routes into the
// runnable audit service.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pagelens/backend/internal/api/middleware"
	"github.com/pagelens/backend/internal/audit"
	"github.com/pagelens/backend/internal/batch"
	"github.com/pagelens/backend/internal/fetch"
	apihttp "github.com/pagelens/backend/internal/http"
	"github.com/pagelens/backend/internal/infrastructure/config"
	"github.com/pagelens/backend/internal/infrastructure/monitoring"
	"github.com/pagelens/backend/internal/logging"
	"github.com/pagelens/backend/internal/ws"
)

// Server wraps the HTTP server and dependencies.
type Server struct {
	router *gin.Engine
	log    *logging.Logger
	cfg    *config.Config
}

// New builds a server from configuration.
func New(cfg *config.Config) (*Server, error) {
	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, err
	}

	opts := audit.Options{}
	if cfg.Audit.PolicyFile != "" {
		policy, err := config.LoadPolicy(cfg.Audit.PolicyFile)
		if err != nil {
			return nil, err
		}
		opts.Weights = policy.ScoreWeights()
		opts.Limits = policy.RuleLimits()
		log.Info("scoring policy loaded", zap.String("file", cfg.Audit.PolicyFile))
	}

	engine := audit.NewEngine(log, opts)
	metrics := monitoring.NewMetrics()
	fetcher := fetch.New(fetch.Config{
		Timeout:    time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.Fetch.MaxRetries,
		UserAgent:  "pagelens/1.0",
	})
	batcher := batch.New(engine, log)
	store := apihttp.NewStore(cfg.Audit.MaxReports)

	handlers := apihttp.NewHandlers(engine, fetcher, batcher, store, metrics, log)
	wsHandler := ws.NewHandler(engine, metrics, log)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/audit", handlers.Audit)
	router.POST("/audit/url", handlers.AuditURL)
	router.POST("/audit/batch", handlers.AuditBatch)
	router.GET("/audit/:id/export", handlers.Export)

	router.GET("/stream", wsHandler.HandleConnection)

	return &Server{router: router, log: log, cfg: cfg}, nil
}

// Run starts the server and blocks.
func (s *Server) Run() error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.log.Info("starting audit service", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close flushes buffered log entries.
func (s *Server) Close() error {
	return s.log.Sync()
}
