package memory

import (
	"github.com/viant/crudly/store"
	"sort"
	"sync"
)

// Store represents in memory entities store
type Store struct {
	mux      sync.RWMutex
	entities map[string]*Entity
}

// Names returns entity names
func (s *Store) Names() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	var result = make([]string, 0, len(s.entities))
	for name := range s.entities {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Entity returns an entity
func (s *Store) Entity(name string) (store.Entity, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	entity, ok := s.entities[name]
	if !ok {
		return nil, store.ErrUnknownEntity
	}
	return entity, nil
}

// Register adds an entity, existing entity is replaced
func (s *Store) Register(entity *Entity) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.entities[entity.Name] = entity
}

// New creates a store with empty entities
func New(entities ...*Entity) *Store {
	ret := &Store{entities: map[string]*Entity{}}
	for _, entity := range entities {
		ret.Register(entity)
	}
	return ret
}
