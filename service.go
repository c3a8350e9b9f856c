package crudly

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/viant/crudly/dispatcher"
	"github.com/viant/crudly/handler"
	"github.com/viant/crudly/logging"
	"github.com/viant/crudly/metric"
	"github.com/viant/crudly/router"
	"github.com/viant/crudly/store"
)

//go:embed Version
var Version string

type (
	// Service exposes entity action groups of a store for embedding into an HTTP application
	Service struct {
		dispatcher *dispatcher.Service
		metrics    *metric.Registry
		logger     logging.Logger
	}

	options struct {
		logger  logging.Logger
		metrics *metric.Registry
	}

	// Option represents service option
	Option func(o *options)
)

// WithLogger sets service logger
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets metrics registry
func WithMetrics(metrics *metric.Registry) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// New creates a service for supplied store
func New(aStore store.Store, opts ...Option) *Service {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}
	if o.metrics == nil {
		o.metrics = metric.New(nil)
	}
	return &Service{
		dispatcher: dispatcher.New(aStore,
			dispatcher.WithLogger(o.logger),
			dispatcher.WithHandlerOptions(handler.WithMetrics(o.metrics)),
		),
		metrics: o.metrics,
		logger:  o.logger,
	}
}

// Init builds canonical groups for all store entities
func (s *Service) Init(options map[string]handler.GroupOptions) error {
	if options == nil {
		options = map[string]handler.GroupOptions{}
	}
	_, err := s.dispatcher.Init(options)
	return err
}

// Create builds a group, custom when exposed name differs from entity
func (s *Service) Create(entity, exposed string, options handler.GroupOptions) (*handler.Group, error) {
	return s.dispatcher.Create(entity, exposed, options)
}

// Lookup returns custom or canonical group
func (s *Service) Lookup(name string) (*handler.Group, error) {
	return s.dispatcher.Lookup(name)
}

// Dispatcher returns group registry
func (s *Service) Dispatcher() *dispatcher.Service {
	return s.dispatcher
}

// Metrics returns metrics registry
func (s *Service) Metrics() *metric.Registry {
	return s.metrics
}

// Mount registers routes on supplied mux router
func (s *Service) Mount(root *mux.Router, routes []*router.Route, opts ...router.Option) (*router.Router, error) {
	aRouter := router.New(s.dispatcher, routes, append([]router.Option{router.WithLogger(s.logger)}, opts...)...)
	if err := aRouter.Mount(root); err != nil {
		return nil, err
	}
	s.logger.Infoc(context.Background(), "routes mounted", "count", len(routes))
	return aRouter, nil
}

// HTTPHandler returns http handler serving supplied routes
func (s *Service) HTTPHandler(routes []*router.Route, opts ...router.Option) (http.Handler, error) {
	root := mux.NewRouter()
	if _, err := s.Mount(root, routes, opts...); err != nil {
		return nil, err
	}
	return logging.Middleware(root), nil
}
