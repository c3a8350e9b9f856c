package store

import (
	"fmt"
	"github.com/viant/toolbox"
	"reflect"
	"strings"
)

const (
	OpEquals     = "equals"
	OpNot        = "not"
	OpIn         = "in"
	OpNotIn      = "notIn"
	OpLt         = "lt"
	OpLte        = "lte"
	OpGt         = "gt"
	OpGte        = "gte"
	OpContains   = "contains"
	OpStartsWith = "startsWith"
	OpEndsWith   = "endsWith"

	LogicalAnd = "AND"
	LogicalOr  = "OR"
	LogicalNot = "NOT"
)

// IsOperator returns true for supported field operators
func IsOperator(name string) bool {
	switch name {
	case OpEquals, OpNot, OpIn, OpNotIn, OpLt, OpLte, OpGt, OpGte, OpContains, OpStartsWith, OpEndsWith:
		return true
	}
	return false
}

// Match returns true if row satisfies where clause
func Match(row Row, where map[string]interface{}) (bool, error) {
	for key, condition := range where {
		matched, err := matchEntry(row, key, condition)
		if err != nil || !matched {
			return false, err
		}
	}
	return true, nil
}

func matchEntry(row Row, key string, condition interface{}) (bool, error) {
	switch key {
	case LogicalAnd:
		for _, clause := range clauses(condition) {
			matched, err := Match(row, clause)
			if err != nil || !matched {
				return false, err
			}
		}
		return true, nil
	case LogicalOr:
		for _, clause := range clauses(condition) {
			matched, err := Match(row, clause)
			if err != nil {
				return false, err
			}
			if matched {
				return true, nil
			}
		}
		return false, nil
	case LogicalNot:
		for _, clause := range clauses(condition) {
			matched, err := Match(row, clause)
			if err != nil {
				return false, err
			}
			if matched {
				return false, nil
			}
		}
		return true, nil
	}
	value := row[key]
	operators := asMap(condition)
	if operators == nil || !hasOperator(operators) {
		return Equal(value, condition), nil
	}
	for op, operand := range operators {
		matched, err := matchOperator(value, op, operand)
		if err != nil {
			return false, fmt.Errorf("invalid %v condition: %w", key, err)
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

func matchOperator(value interface{}, op string, operand interface{}) (bool, error) {
	switch op {
	case OpEquals:
		return Equal(value, operand), nil
	case OpNot:
		if operators := asMap(operand); operators != nil && hasOperator(operators) {
			matched, err := matchEntry(Row{"": value}, "", operators)
			return !matched, err
		}
		return !Equal(value, operand), nil
	case OpIn, OpNotIn:
		candidates, ok := asSlice(operand)
		if !ok {
			return false, fmt.Errorf("%v expects a list", op)
		}
		found := false
		for _, candidate := range candidates {
			if Equal(value, candidate) {
				found = true
				break
			}
		}
		return found == (op == OpIn), nil
	case OpLt, OpLte, OpGt, OpGte:
		if value == nil || operand == nil {
			return false, nil
		}
		cmp := Compare(value, operand)
		switch op {
		case OpLt:
			return cmp < 0, nil
		case OpLte:
			return cmp <= 0, nil
		case OpGt:
			return cmp > 0, nil
		}
		return cmp >= 0, nil
	case OpContains, OpStartsWith, OpEndsWith:
		text, ok := value.(string)
		if !ok {
			return false, nil
		}
		fragment := toolbox.AsString(operand)
		switch op {
		case OpContains:
			return strings.Contains(text, fragment), nil
		case OpStartsWith:
			return strings.HasPrefix(text, fragment), nil
		}
		return strings.HasSuffix(text, fragment), nil
	}
	return false, fmt.Errorf("unsupported operator: %v", op)
}

func hasOperator(aMap map[string]interface{}) bool {
	for key := range aMap {
		if IsOperator(key) {
			return true
		}
	}
	return false
}

func clauses(condition interface{}) []map[string]interface{} {
	if aMap := asMap(condition); aMap != nil {
		return []map[string]interface{}{aMap}
	}
	items, _ := asSlice(condition)
	var result []map[string]interface{}
	for _, item := range items {
		if aMap := asMap(item); aMap != nil {
			result = append(result, aMap)
		}
	}
	return result
}

func asSlice(value interface{}) ([]interface{}, bool) {
	if items, ok := value.([]interface{}); ok {
		return items, true
	}
	if value != nil && toolbox.IsSlice(value) {
		return toolbox.AsSlice(value), true
	}
	return nil, false
}

// Equal compares values, numbers are compared numerically
func Equal(x, y interface{}) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	if isNumber(x) && isNumber(y) {
		return toFloat(x) == toFloat(y)
	}
	return reflect.DeepEqual(x, y)
}

// Compare returns -1, 0, 1, nil sorts first, numbers are compared numerically, other values by their text
func Compare(x, y interface{}) int {
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return -1
	case y == nil:
		return 1
	}
	if isNumber(x) && isNumber(y) {
		a, b := toFloat(x), toFloat(y)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	if a, ok := x.(bool); ok {
		if b, ok := y.(bool); ok {
			switch {
			case a == b:
				return 0
			case !a:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(toolbox.AsString(x), toolbox.AsString(y))
}

func isNumber(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

func toFloat(value interface{}) float64 {
	result, _ := toolbox.ToFloat(value)
	return result
}
