package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/viant/crudly/handler"
)

// Route binds method and URI template to an entity group action
type Route struct {
	Method string `json:",omitempty"`
	URI    string
	Entity string
	Name   string `json:",omitempty"`
	Action handler.Action
	Cors   *Cors `json:",omitempty"`
}

// GroupName returns exposed group name, custom name takes precedence over entity
func (r *Route) GroupName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Entity
}

// Init validates route and applies defaults
func (r *Route) Init(cors *Cors) error {
	if r.URI == "" {
		return fmt.Errorf("route URI was empty")
	}
	if r.GroupName() == "" {
		return fmt.Errorf("route %v: entity was empty", r.URI)
	}
	action, err := handler.ParseAction(string(r.Action))
	if err != nil {
		return fmt.Errorf("route %v: %w", r.URI, err)
	}
	r.Action = action
	if r.Method == "" {
		r.Method = DefaultMethod(action)
	}
	r.Method = strings.ToUpper(r.Method)
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return fmt.Errorf("route %v: unsupported method: %v", r.URI, r.Method)
	}
	if r.Cors != nil {
		r.Cors.inherit(cors)
	} else if cors != nil {
		inherited := *cors
		r.Cors = &inherited
	}
	return nil
}

// DefaultMethod returns HTTP method conventionally used for an action
func DefaultMethod(action handler.Action) string {
	switch action {
	case handler.Create, handler.CreateMany:
		return http.MethodPost
	case handler.Update, handler.UpdateMany:
		return http.MethodPut
	case handler.Delete, handler.DeleteMany:
		return http.MethodDelete
	}
	return http.MethodGet
}
