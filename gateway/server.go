package gateway

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/viant/crudly/config"
)

// Server represents standalone HTTP server
type Server struct {
	http.Server
	Service *Service
}

// shutdownOnInterrupt server on interrupts
func (s *Server) shutdownOnInterrupt() {
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint
		s.shutdown(context.Background())
	}()
}

// shutdown stops accepting connections and releases the store, failures are logged
func (s *Server) shutdown(ctx context.Context) {
	logger := s.Service.Logger()
	if err := s.Shutdown(ctx); err != nil {
		logger.Errorc(ctx, "failed to shutdown HTTP server", "error", err)
	}
	if err := s.Service.Close(); err != nil {
		logger.Errorc(ctx, "failed to close store", "error", err)
	}
	logger.Infoc(ctx, "server stopped", "addr", s.Addr)
}

// NewServer creates a server for supplied config
func NewServer(ctx context.Context, cfg *config.Config, opts ...Option) (*Server, error) {
	service, err := New(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	endpoint := cfg.Endpoint
	server := &Server{
		Service: service,
		Server: http.Server{
			Addr:           ":" + strconv.Itoa(endpoint.Port),
			Handler:        service,
			ReadTimeout:    time.Millisecond * time.Duration(endpoint.ReadTimeoutMs),
			WriteTimeout:   time.Millisecond * time.Duration(endpoint.WriteTimeoutMs),
			MaxHeaderBytes: endpoint.MaxHeaderBytes,
		},
	}
	server.shutdownOnInterrupt()
	return server, nil
}
