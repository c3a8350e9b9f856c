package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/viant/crudly/store"
)

// Group represents action handlers bound to one entity
type Group struct {
	Name     string
	Entity   string
	handlers map[Action]*Handler
}

// NewGroup creates handlers for all actions, name is the exposed group name, entity is the store entity name
func NewGroup(name, entity string, target store.Entity, config GroupOptions, opts ...Option) (*Group, error) {
	for action := range config {
		if _, err := ParseAction(string(action)); err != nil {
			return nil, fmt.Errorf("invalid %v options: %w", name, err)
		}
	}
	ret := &Group{Name: name, Entity: entity, handlers: make(map[Action]*Handler, len(Actions))}
	for _, action := range Actions {
		aHandler, err := New(entity, action, target, config[action], opts...)
		if err != nil {
			return nil, err
		}
		ret.handlers[action] = aHandler
	}
	return ret, nil
}

// Handler returns action handler
func (g *Group) Handler(action Action) (*Handler, bool) {
	aHandler, ok := g.handlers[action]
	return aHandler, ok
}

// HandlerFunc returns action http handler func, it panics on unknown action
func (g *Group) HandlerFunc(action Action) http.HandlerFunc {
	aHandler, ok := g.handlers[action]
	if !ok {
		panic(fmt.Sprintf("unsupported action: %v", action))
	}
	return aHandler.ServeHTTP
}

// Actions returns group actions
func (g *Group) Actions() []Action {
	var result = make([]Action, 0, len(g.handlers))
	for action := range g.handlers {
		result = append(result, action)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
