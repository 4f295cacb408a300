package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"lesson-rag/internal/config"
	"lesson-rag/internal/models"
)

const shutdownTimeout = 10 * time.Second

// Service is the pipeline behind the HTTP routes.
type Service interface {
	Query(ctx context.Context, key models.LessonKey, question string) (string, error)
	Rewrite(ctx context.Context, key models.LessonKey, style string) (string, error)
}

type Server struct {
	svc    Service
	engine *gin.Engine
	addr   string
}

func New(cfg *config.ServerConfig, svc Service) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	engine.Use(requestLogger(), gin.CustomRecovery(recoverToDetail))

	s := &Server{svc: svc, engine: engine, addr: cfg.Addr}
	engine.GET("/", s.hello)
	engine.POST("/ask", s.ask)
	engine.POST("/rewrite-pdf-emotion", s.rewrite)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
