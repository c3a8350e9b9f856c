package validator

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/viant/crudly/converter"
	"github.com/viant/crudly/httputils"
	"github.com/xeipuuv/gojsonschema"
)

const (
	LocationParams = "params"
	LocationQuery  = "query"
	LocationBody   = "body"

	rootField = "(root)"
)

// Rules represents per location validation items
type Rules struct {
	Params []*Item `json:",omitempty"`
	Query  []*Item `json:",omitempty"`
	Body   []*Item `json:",omitempty"`
}

// Validator validates request values against JSON schemas compiled from rules
type Validator struct {
	params *location
	query  *location
	body   *location
}

type location struct {
	name   string
	items  []*Item
	schema *gojsonschema.Schema
}

// New creates a validator, it returns an error when rules are misconfigured
func New(rules *Rules) (*Validator, error) {
	if rules == nil {
		return nil, nil
	}
	var err error
	ret := &Validator{}
	if ret.params, err = newLocation(LocationParams, rules.Params); err != nil {
		return nil, err
	}
	if ret.query, err = newLocation(LocationQuery, rules.Query); err != nil {
		return nil, err
	}
	if ret.body, err = newLocation(LocationBody, rules.Body); err != nil {
		return nil, err
	}
	return ret, nil
}

func newLocation(name string, items []*Item) (*location, error) {
	if len(items) == 0 {
		return nil, nil
	}
	for _, item := range items {
		if err := item.init(name); err != nil {
			return nil, err
		}
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(objectSchema(items)))
	if err != nil {
		return nil, fmt.Errorf("invalid %v rules: %w", name, err)
	}
	return &location{name: name, items: items, schema: schema}, nil
}

// Validate validates request locations, query and path strings are coerced before checking types.
// Locations without rules are not checked.
func (v *Validator) Validate(params map[string]string, query map[string]string, body map[string]interface{}) error {
	if v == nil {
		return nil
	}
	errors := httputils.NewErrors()
	if v.params != nil {
		if err := v.params.validate(errors, coerceStrings(params, v.params.items)); err != nil {
			return err
		}
	}
	if v.query != nil {
		if err := v.query.validate(errors, coerceStrings(query, v.query.items)); err != nil {
			return err
		}
	}
	if v.body != nil && body != nil {
		if err := v.body.validate(errors, body); err != nil {
			return err
		}
	}
	if errors.HasError() {
		errors.Message = fmt.Sprintf("request %v validation failed: %v", errors.Violations[0].Location, joinMessages(errors.Violations))
		return errors
	}
	return nil
}

func (l *location) validate(errors *httputils.Errors, values map[string]interface{}) error {
	result, err := l.schema.Validate(gojsonschema.NewGoLoader(values))
	if err != nil {
		return httputils.NewError(http.StatusBadRequest, "invalid request "+l.name+": "+err.Error(), httputils.WithError(err))
	}
	var violations = make([]*httputils.Violation, 0, len(result.Errors()))
	for _, resultError := range result.Errors() {
		violations = append(violations, l.violation(resultError))
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Field < violations[j].Field
	})
	for _, violation := range violations {
		errors.AddViolation(violation)
	}
	return nil
}

func (l *location) violation(resultError gojsonschema.ResultError) *httputils.Violation {
	field := resultError.Field()
	if field == rootField {
		field = ""
	}
	value := resultError.Value()
	check := resultError.Type()
	switch check {
	case "required", "additional_property_not_allowed":
		if property, ok := resultError.Details()["property"].(string); ok {
			field = joinPath(field, property)
		}
		if check == "required" {
			value = nil
		} else {
			check = "additionalProperties"
		}
	case "invalid_type":
		check = "type"
	}
	return &httputils.Violation{Location: l.name, Field: field, Value: value, Check: check, Message: resultError.Description()}
}

func objectSchema(items []*Item) map[string]interface{} {
	properties := make(map[string]interface{}, len(items))
	var required []string
	for _, item := range items {
		properties[item.Key] = itemSchema(item)
		if !item.Nullable {
			required = append(required, item.Key)
		}
	}
	result := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		result["required"] = required
	}
	return result
}

func itemSchema(item *Item) map[string]interface{} {
	var result map[string]interface{}
	switch item.Type {
	case TypeAny:
		return map[string]interface{}{}
	case TypeArray:
		result = map[string]interface{}{"type": string(TypeArray)}
		if len(item.Items) > 0 {
			result["items"] = objectSchema(item.Items)
		} else {
			result["items"] = primitiveSchema(item.ItemType)
		}
	case TypeObject:
		result = objectSchema(item.Items)
	default:
		result = primitiveSchema(item.Type)
	}
	if item.Nullable {
		result["type"] = []string{result["type"].(string), "null"}
	}
	return result
}

func primitiveSchema(typ Type) map[string]interface{} {
	if typ == "" || typ == TypeAny {
		return map[string]interface{}{}
	}
	return map[string]interface{}{"type": string(typ)}
}

// coerceStrings converts number and boolean declared values, empty and malformed values are kept as strings
func coerceStrings(values map[string]string, items []*Item) map[string]interface{} {
	types := make(map[string]Type, len(items))
	for _, item := range items {
		types[item.Key] = item.Type
	}
	result := make(map[string]interface{}, len(values))
	for k, v := range values {
		result[k] = v
		if v == "" {
			continue
		}
		switch types[k] {
		case TypeNumber:
			if number, ok := converter.ParseNumber(v); ok && !math.IsInf(number, 0) {
				result[k] = number
			}
		case TypeBoolean:
			if v == "true" || v == "false" {
				result[k] = v == "true"
			}
		}
	}
	return result
}

func joinMessages(violations []*httputils.Violation) string {
	messages := make([]string, 0, len(violations))
	for _, violation := range violations {
		messages = append(messages, violation.Field+" - "+violation.Message)
	}
	return strings.Join(messages, ", ")
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
