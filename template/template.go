package template

import (
	"fmt"
	"github.com/viant/crudly/converter"
	"github.com/viant/crudly/flatten"
)

// Template represents compiled, immutable argument template
type Template struct {
	flat         map[string]interface{}
	placeholders map[string]*Placeholder
}

// New compiles argument template, invalid placeholder is reported as configuration error
func New(definition map[string]interface{}) (*Template, error) {
	ret := &Template{
		flat:         flatten.Flatten(definition),
		placeholders: map[string]*Placeholder{},
	}
	for path, value := range ret.flat {
		if !IsPlaceholder(value) {
			continue
		}
		placeholder, err := ParsePlaceholder(value.(string))
		if err != nil {
			return nil, &ConfigError{Path: path, Origin: err}
		}
		ret.placeholders[path] = placeholder
	}
	return ret, nil
}

// Placeholders returns flattened path to placeholder mapping
func (t *Template) Placeholders() map[string]*Placeholder {
	result := make(map[string]*Placeholder, len(t.placeholders))
	for k, v := range t.placeholders {
		result[k] = v
	}
	return result
}

// Resolve substitutes placeholders with coerced request values; placeholders without exact request key match are removed.
// Overrides are merged on top of the template before substitution. A nil template resolves overrides only.
func (t *Template) Resolve(values map[string]interface{}, overrides map[string]interface{}) (map[string]interface{}, error) {
	flat := map[string]interface{}{}
	placeholders := map[string]*Placeholder{}
	if t != nil {
		for k, v := range t.flat {
			flat[k] = v
		}
		for k, v := range t.placeholders {
			placeholders[k] = v
		}
	}
	if len(overrides) > 0 {
		if err := merge(flat, placeholders, overrides); err != nil {
			return nil, err
		}
	}
	for path, placeholder := range placeholders {
		value, ok := values[placeholder.Key]
		if !ok {
			delete(flat, path)
			continue
		}
		coerced, err := converter.CoerceValue(value, placeholder.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %v: %w", path, err)
		}
		flat[path] = coerced
	}
	return flatten.Unflatten(flat), nil
}

func merge(flat map[string]interface{}, placeholders map[string]*Placeholder, overrides map[string]interface{}) error {
	for path, value := range flatten.Flatten(overrides) {
		for existing := range flat {
			if existing == path || hasPathPrefix(existing, path) || hasPathPrefix(path, existing) {
				delete(flat, existing)
				delete(placeholders, existing)
			}
		}
		flat[path] = value
		if !IsPlaceholder(value) {
			continue
		}
		placeholder, err := ParsePlaceholder(value.(string))
		if err != nil {
			return &ConfigError{Path: path, Origin: err}
		}
		placeholders[path] = placeholder
	}
	return nil
}

func hasPathPrefix(path, prefix string) bool {
	return len(path) > len(prefix) && path[:len(prefix)] == prefix && path[len(prefix):len(prefix)+len(flatten.Delimiter)] == flatten.Delimiter
}
