package gateway

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/viant/crudly"
	"github.com/viant/crudly/config"
	"github.com/viant/crudly/logging"
	"github.com/viant/crudly/metric"
	"github.com/viant/crudly/router"
	"github.com/viant/crudly/store"
	"github.com/viant/gmetric"
)

// Service wires store, groups and routes for supplied config
type Service struct {
	Config  *config.Config
	Store   store.Store
	Crudly  *crudly.Service
	Router  *router.Router
	Metrics *metric.Registry
	logger  logging.Logger
	handler http.Handler
	closer  io.Closer
}

// New creates a service, when store is nil it is created from config connector
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	o := newOptions(opts)
	logger := o.logger
	if logger == nil {
		logger = logging.New(cfg.LogLevel, os.Stdout)
	}
	ret := &Service{Config: cfg, Store: o.store, logger: logger, Metrics: metric.New(o.metrics)}
	if ret.Store == nil {
		if cfg.Connector == nil {
			return nil, errors.New("connector was empty")
		}
		aStore, closer, err := NewStore(ctx, cfg.Connector)
		if err != nil {
			return nil, err
		}
		ret.Store, ret.closer = aStore, closer
	}
	if err := ret.init(ctx); err != nil {
		_ = ret.Close()
		return nil, err
	}
	return ret, nil
}

func (s *Service) init(ctx context.Context) error {
	s.Crudly = crudly.New(s.Store, crudly.WithLogger(s.logger), crudly.WithMetrics(s.Metrics))
	if err := s.Crudly.Init(s.Config.Entities); err != nil {
		return err
	}
	for _, custom := range s.Config.Customs {
		if _, err := s.Crudly.Create(custom.Entity, custom.Name, custom.Options); err != nil {
			return err
		}
	}
	root := mux.NewRouter()
	if URI := s.Config.MetricURI; URI != "" {
		root.PathPrefix(URI).Handler(s.Metrics.Handler(URI)).Methods(http.MethodGet)
	}
	var err error
	if s.Router, err = s.Crudly.Mount(root, s.Config.Routes, router.WithPrefix(s.Config.APIPrefix), router.WithCors(s.Config.Cors)); err != nil {
		return errors.Wrap(err, "failed to mount routes")
	}
	s.handler = logging.Middleware(root)
	s.logger.Infoc(ctx, "service initialised", "version", s.Config.Version, "entities", s.Store.Names(), "routes", len(s.Config.Routes))
	return nil
}

// ServeHTTP serves mounted routes and metrics
func (s *Service) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	s.handler.ServeHTTP(writer, request)
}

// Close releases store connections
func (s *Service) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Logger returns service logger
func (s *Service) Logger() logging.Logger {
	return s.logger
}

// MetricService returns gmetric service
func (s *Service) MetricService() *gmetric.Service {
	return s.Metrics.Service()
}
