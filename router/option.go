package router

import (
	"github.com/viant/crudly/handler"
	"github.com/viant/crudly/logging"
)

type (
	options struct {
		prefix    string
		cors      *Cors
		logger    logging.Logger
		errorSink handler.ErrorSink
	}

	//Option represents router option
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
	if ret.errorSink == nil {
		ret.errorSink = handler.DefaultErrorSink
	}
	return ret
}

// WithPrefix sets API prefix, i.e. /v1/api
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithCors sets router level CORS settings
func WithCors(cors *Cors) Option {
	return func(o *options) {
		o.cors = cors
	}
}

// WithLogger sets router logger
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithErrorSink sets per request error sink
func WithErrorSink(sink handler.ErrorSink) Option {
	return func(o *options) {
		o.errorSink = sink
	}
}
