package dispatcher

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/viant/crudly/handler"
	"github.com/viant/crudly/logging"
	"github.com/viant/crudly/store"
	"golang.org/x/sync/singleflight"
)

// Service maintains canonical (per entity) and custom (aliased) handler groups
type Service struct {
	store     store.Store
	functions map[string]*handler.Group
	customs   map[string]*handler.Group
	mux       sync.RWMutex
	group     singleflight.Group
	logger    logging.Logger
	opts      []handler.Option
}

// New creates a dispatcher for supplied store
func New(aStore store.Store, opts ...Option) *Service {
	o := newOptions(opts)
	return &Service{
		store:     aStore,
		functions: map[string]*handler.Group{},
		customs:   map[string]*handler.Group{},
		logger:    o.logger,
		opts:      append([]handler.Option{handler.WithLogger(o.logger)}, o.handlerOptions...),
	}
}

// Init builds canonical groups for every store entity with supplied per entity options
func (s *Service) Init(options map[string]handler.GroupOptions) (map[string]*handler.Group, error) {
	for name := range options {
		if !s.hasEntity(name) {
			return nil, errors.Wrapf(store.ErrUnknownEntity, "invalid options: %v", name)
		}
	}
	var result = make(map[string]*handler.Group)
	for _, name := range s.store.Names() {
		group, err := s.Create(name, name, options[name])
		if err != nil {
			return nil, err
		}
		result[name] = group
	}
	return result, nil
}

// Get returns memoized canonical group, the group is built without templates on the first call
func (s *Service) Get(name string) (*handler.Group, error) {
	if group := s.function(name); group != nil {
		return group, nil
	}
	value, err, _ := s.group.Do(name, func() (interface{}, error) {
		if group := s.function(name); group != nil {
			return group, nil
		}
		return s.Create(name, name, nil)
	})
	if err != nil {
		return nil, err
	}
	return value.(*handler.Group), nil
}

// Create builds a group against entity, it is registered as canonical when exposed equals entity, as custom otherwise.
func (s *Service) Create(entity, exposed string, options handler.GroupOptions) (*handler.Group, error) {
	if exposed == "" {
		exposed = entity
	}
	target, err := s.store.Entity(entity)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %v group", exposed)
	}
	group, err := handler.NewGroup(exposed, entity, target, options, s.opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %v group", exposed)
	}
	s.mux.Lock()
	if exposed == entity {
		s.functions[entity] = group
	} else {
		s.customs[exposed] = group
	}
	s.mux.Unlock()
	s.logger.Infoc(context.Background(), "created handler group", "entity", entity, "name", exposed, "custom", exposed != entity)
	return group, nil
}

// Custom returns aliased group
func (s *Service) Custom(name string) (*handler.Group, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	group, ok := s.customs[name]
	return group, ok
}

// Lookup returns custom group first then canonical
func (s *Service) Lookup(name string) (*handler.Group, error) {
	if group, ok := s.Custom(name); ok {
		return group, nil
	}
	if group := s.function(name); group != nil {
		return group, nil
	}
	if s.hasEntity(name) {
		return s.Get(name)
	}
	return nil, fmt.Errorf("%w: %v", store.ErrUnknownEntity, name)
}

// Functions returns canonical groups snapshot
func (s *Service) Functions() map[string]*handler.Group {
	s.mux.RLock()
	defer s.mux.RUnlock()
	var result = make(map[string]*handler.Group, len(s.functions))
	for k, v := range s.functions {
		result[k] = v
	}
	return result
}

// Customs returns custom groups snapshot
func (s *Service) Customs() map[string]*handler.Group {
	s.mux.RLock()
	defer s.mux.RUnlock()
	var result = make(map[string]*handler.Group, len(s.customs))
	for k, v := range s.customs {
		result[k] = v
	}
	return result
}

func (s *Service) function(name string) *handler.Group {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.functions[name]
}

func (s *Service) hasEntity(name string) bool {
	for _, candidate := range s.store.Names() {
		if candidate == name {
			return true
		}
	}
	return false
}
