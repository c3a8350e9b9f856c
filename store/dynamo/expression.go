package dynamo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/viant/crudly/store"
)

type expression struct {
	names  map[string]string
	values map[string]types.AttributeValue
}

func newExpression() *expression {
	return &expression{names: map[string]string{}, values: map[string]types.AttributeValue{}}
}

func (e *expression) name(attribute string) string {
	placeholder := fmt.Sprintf("#n%d", len(e.names))
	e.names[placeholder] = attribute
	return placeholder
}

func (e *expression) value(value interface{}) (string, error) {
	av, err := attributevalue.Marshal(value)
	if err != nil {
		return "", err
	}
	placeholder := fmt.Sprintf(":v%d", len(e.values))
	e.values[placeholder] = av
	return placeholder, nil
}

// filter returns a filter expression for plain equality entries, other conditions are evaluated on scanned items
func (e *expression) filter(where map[string]interface{}) (string, error) {
	keys := make([]string, 0, len(where))
	for key, condition := range where {
		if isLogical(key) || condition == nil || store.AsMap(condition) != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var conditions []string
	for _, key := range keys {
		value, err := e.value(where[key])
		if err != nil {
			return "", err
		}
		conditions = append(conditions, e.name(key)+" = "+value)
	}
	return strings.Join(conditions, " AND "), nil
}

// update returns SET expression for supplied data, key attributes are skipped
func (e *expression) update(data map[string]interface{}, keys ...string) (string, error) {
	skip := map[string]bool{}
	for _, key := range keys {
		skip[key] = true
	}
	names := make([]string, 0, len(data))
	for name := range data {
		if !skip[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	var assignments []string
	for _, name := range names {
		value, err := e.value(data[name])
		if err != nil {
			return "", err
		}
		assignments = append(assignments, e.name(name)+" = "+value)
	}
	if len(assignments) == 0 {
		return "", nil
	}
	return "SET " + strings.Join(assignments, ", "), nil
}

func (e *expression) attributeNames() map[string]string {
	if len(e.names) == 0 {
		return nil
	}
	return e.names
}

func (e *expression) attributeValues() map[string]types.AttributeValue {
	if len(e.values) == 0 {
		return nil
	}
	return e.values
}

func isLogical(key string) bool {
	switch key {
	case store.LogicalAnd, store.LogicalOr, store.LogicalNot:
		return true
	}
	return false
}
