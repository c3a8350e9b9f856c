package metric

import (
	"net/http"
	"strings"
	"time"

	"github.com/viant/gmetric"
	"github.com/viant/gmetric/provider"
)

const location = "crudly"

// Registry creates per entity action counters
type Registry struct {
	service *gmetric.Service
}

// New creates a registry, nil service creates a new gmetric service
func New(service *gmetric.Service) *Registry {
	if service == nil {
		service = gmetric.New()
	}
	return &Registry{service: service}
}

// Service returns gmetric service
func (r *Registry) Service() *gmetric.Service {
	return r.service
}

// Counter returns an action counter, the counter is registered on the first call
func (r *Registry) Counter(entity, action string) *ActionCounter {
	if r == nil {
		return NewActionCounter(nil)
	}
	name := Name(entity, action)
	if operation := r.service.LookupOperation(name); operation != nil {
		return NewActionCounter(operation)
	}
	operation := r.service.MultiOperationCounter(location, name, entity+" "+action+" request", time.Millisecond, time.Minute, 2, provider.NewBasic())
	return NewActionCounter(operation)
}

// Handler returns metrics HTTP handler
func (r *Registry) Handler(URI string) http.Handler {
	return gmetric.NewHandler(URI, r.service)
}

// Name returns metric operation name
func Name(entity, action string) string {
	return strings.ReplaceAll(location+"."+entity+"."+action, "/", ".")
}
