package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Shivanisinghay/Epsilon/internal/config"
	"github.com/Shivanisinghay/Epsilon/internal/handlers"
	"github.com/Shivanisinghay/Epsilon/internal/media"
	"github.com/Shivanisinghay/Epsilon/internal/middleware"
)

// HTTPServer owns the gin engine and the net/http server wrapped around
// it. The long write timeout accommodates the slower generation proxies.
type HTTPServer struct {
	server *http.Server
	log    zerolog.Logger
}

func NewHTTPServer(cfg *config.AppConfig, log zerolog.Logger, handlerSet handlers.HandlerSet, mediaStore *media.Store) *HTTPServer {
	engine := newEngine(cfg, log)

	// Generated media is served straight off disk until the retention
	// sweep removes it.
	engine.Static("/images", mediaStore.ImagesDir())
	engine.Static("/audio", mediaStore.AudioDir())

	handlerSet.Register(engine.Group("/api"))

	return &HTTPServer{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
			Handler:      engine,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
		},
		log: log,
	}
}

func newEngine(cfg *config.AppConfig, log zerolog.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.RedirectTrailingSlash = true

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.AllowCORSOrigins),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return engine
}

func (s *HTTPServer) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")

	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("http server draining")
	return s.server.Shutdown(ctx)
}
