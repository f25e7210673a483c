// Package server exposes the orbital density sampler over HTTP: a JSON
// sampling endpoint, a health probe, and a WebSocket stream for
// time-evolving superpositions.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/atomview/atomview/config"
	"github.com/atomview/atomview/dataset"
	"github.com/atomview/atomview/errors"
)

// Server ties the dataset store and the sampling engine to an HTTP
// listener.
type Server struct {
	cfg    *config.Config
	store  *dataset.Store
	logger *zap.SugaredLogger

	httpServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a Server. A nil logger disables logging.
func New(cfg *config.Config, store *dataset.Store, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/samples", s.HandleSamples)
	mux.HandleFunc("/healthz", s.HandleHealth)
	mux.HandleFunc("/ws", s.HandleWS)
	return mux
}

// Start runs the HTTP listener until Shutdown is called. It blocks.
func (s *Server) Start() error {
	s.logger.Infow("Server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "server: listen")
	}
	return nil
}

// Shutdown drains in-flight requests, closes WebSocket streams, and
// waits for handler goroutines to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	err := s.httpServer.Shutdown(ctx)
	s.wg.Wait()
	s.logger.Info("Server stopped")
	return err
}
