package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/viant/crudly/handler"
)

// Registry resolves exposed group names to handler groups
type Registry interface {
	Lookup(name string) (*handler.Group, error)
}

// Router mounts entity action handlers onto gorilla/mux
type Router struct {
	registry Registry
	routes   []*Route
	options  *options
}

type preflight struct {
	uri     string
	cors    *Cors
	methods []string
}

func (p *preflight) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if !enableCors(writer, request, p.cors, p.methods, true) {
		writer.WriteHeader(http.StatusForbidden)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

// New creates a router
func New(registry Registry, routes []*Route, opts ...Option) *Router {
	return &Router{registry: registry, routes: routes, options: newOptions(opts)}
}

// Routes returns router routes
func (r *Router) Routes() []*Route {
	return r.routes
}

// Mount registers every route on supplied mux router
func (r *Router) Mount(root *mux.Router) error {
	target := root
	if r.options.prefix != "" {
		target = root.PathPrefix(r.options.prefix).Subrouter()
	}
	var preflights []*preflight
	var byURI = map[string]*preflight{}
	for _, route := range r.routes {
		if err := route.Init(r.options.cors); err != nil {
			return err
		}
		group, err := r.registry.Lookup(route.GroupName())
		if err != nil {
			return fmt.Errorf("failed to mount %v %v: %w", route.Method, route.URI, err)
		}
		aHandler, ok := group.Handler(route.Action)
		if !ok {
			return fmt.Errorf("failed to mount %v %v: unsupported action: %v", route.Method, route.URI, route.Action)
		}
		target.Handle(route.URI, r.handlerFunc(route, aHandler)).Methods(route.Method)
		r.options.logger.Infoc(context.Background(), "mounted route", "method", route.Method, "uri", r.options.prefix+route.URI, "group", group.Name, "action", string(route.Action))
		if route.Cors == nil {
			continue
		}
		candidate, ok := byURI[route.URI]
		if !ok {
			candidate = &preflight{uri: route.URI, cors: route.Cors}
			byURI[route.URI] = candidate
			preflights = append(preflights, candidate)
		}
		candidate.methods = append(candidate.methods, route.Method)
	}
	for _, candidate := range preflights {
		target.Handle(candidate.uri, candidate).Methods(http.MethodOptions)
	}
	return nil
}

// Handler returns a mux router with mounted routes
func (r *Router) Handler() (http.Handler, error) {
	root := mux.NewRouter()
	if err := r.Mount(root); err != nil {
		return nil, err
	}
	return root, nil
}

func (r *Router) handlerFunc(route *Route, aHandler *handler.Handler) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		enableCors(writer, request, route.Cors, nil, false)
		aHandler.Handle(writer, request, r.options.errorSink)
	}
}
