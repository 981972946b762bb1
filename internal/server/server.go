// Package server exposes resume analysis, job search and the career coach
// over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/resume-radar/internal/ai"
	"github.com/spigell/resume-radar/internal/analysis"
	"github.com/spigell/resume-radar/internal/store"
)

const (
	defaultAddr        = ":8000"
	defaultMaxUploadMB = 10
	shutdownTimeout    = 10 * time.Second

	// UserIDHeader carries the Google account id of a signed-in user.
	UserIDHeader = "X-Google-Id"
)

type Config struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	MaxUploadMB  int64         `mapstructure:"max-upload-mb"`
}

type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error)
}

type ProfileReader interface {
	Get(ctx context.Context, userID string) (store.Record, error)
}

// Deps aggregates the handlers' collaborators. Coach may be nil, in which
// case the chat endpoint is not registered.
type Deps struct {
	Analyzer Analyzer
	Jobs     analysis.JobSearcher
	Profiles ProfileReader
	Coach    ai.Coach
	Logger   *zap.Logger
}

type Server struct {
	cfg    Config
	deps   Deps
	engine *gin.Engine
}

func New(cfg Config, deps Deps) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = defaultMaxUploadMB
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Profiles == nil {
		deps.Profiles = store.Nop{}
	}

	s := &Server{cfg: cfg, deps: deps}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = s.cfg.MaxUploadMB << 20

	r.Use(corsMiddleware())
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.deps.Logger))

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.POST("/analyze", s.analyze)
	api.GET("/jobs/search", s.searchJobs)
	api.GET("/profile/:id", s.getProfile)
	if s.deps.Coach != nil {
		api.POST("/chat", s.chat)
	}

	return r
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.deps.Logger.Info("http server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
