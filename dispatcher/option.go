package dispatcher

import (
	"github.com/viant/crudly/handler"
	"github.com/viant/crudly/logging"
)

type (
	options struct {
		logger         logging.Logger
		handlerOptions []handler.Option
	}

	//Option represents dispatcher option
	Option func(o *options)
)

func newOptions(opts []Option) *options {
	ret := &options{}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = logging.Nop()
	}
	return ret
}

// WithLogger sets dispatcher and handlers logger
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHandlerOptions sets options applied to every created handler
func WithHandlerOptions(opts ...handler.Option) Option {
	return func(o *options) {
		o.handlerOptions = append(o.handlerOptions, opts...)
	}
}
