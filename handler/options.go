package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/viant/crudly/httputils"
	"github.com/viant/crudly/logging"
	"github.com/viant/crudly/metric"
	"github.com/viant/crudly/store"
	"github.com/viant/crudly/validator"
)

// CallbackKey is resolved arguments key holding override callback
const CallbackKey = "callback"

type (
	// Callback takes over action execution, it owns the response
	Callback func(w http.ResponseWriter, r *http.Request, args store.Args) error

	// ErrorSink receives per request failure
	ErrorSink func(w http.ResponseWriter, r *http.Request, err error)

	// PathVariables extracts request path variables
	PathVariables func(r *http.Request) map[string]string

	// Options represents single action configuration
	Options struct {
		Template map[string]interface{} `json:",omitempty"`
		Callback Callback               `json:"-"`
		Rules    *validator.Rules       `json:",omitempty"`
	}

	// GroupOptions represents per action configuration of a group
	GroupOptions map[Action]*Options

	options struct {
		logger        logging.Logger
		metrics       *metric.Registry
		pathVariables PathVariables
	}

	// Option represents handler option
	Option func(o *options)
)

// WithLogger sets handler logger
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

// WithPathVariables sets path variables extractor
func WithPathVariables(fn PathVariables) Option {
	return func(o *options) {
		o.pathVariables = fn
	}
}

func newOptions(opts []Option) *options {
	ret := &options{}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = logging.Nop()
	}
	if ret.pathVariables == nil {
		ret.pathVariables = mux.Vars
	}
	return ret
}

// DefaultErrorSink writes JSON error status
func DefaultErrorSink(w http.ResponseWriter, r *http.Request, err error) {
	httputils.WriteError(w, err)
}
