package gateway

import (
	"github.com/viant/crudly/logging"
	"github.com/viant/crudly/store"
	"github.com/viant/gmetric"
)

type (
	options struct {
		store   store.Store
		logger  logging.Logger
		metrics *gmetric.Service
	}

	//Option represents service option
	Option func(o *options)
)

func newOptions(opts []Option) *options {
	ret := &options{}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// WithStore sets store, connector config is ignored then
func WithStore(aStore store.Store) Option {
	return func(o *options) {
		o.store = aStore
	}
}

// WithLogger sets logger
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets gmetric service
func WithMetrics(service *gmetric.Service) Option {
	return func(o *options) {
		o.metrics = service
	}
}
