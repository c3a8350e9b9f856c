package store

import (
	"github.com/viant/toolbox"
	"math"
)

func asMap(value interface{}) map[string]interface{} {
	switch actual := value.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return actual
	case Args:
		return actual
	case Row:
		return actual
	}
	if toolbox.IsMap(value) {
		return toolbox.AsMap(value)
	}
	return nil
}

func asInt(value interface{}) int {
	switch actual := value.(type) {
	case nil:
		return 0
	case int:
		return actual
	case float64:
		if math.IsNaN(actual) || math.IsInf(actual, 0) {
			return 0
		}
		return int(actual)
	}
	result, err := toolbox.ToInt(value)
	if err != nil {
		return 0
	}
	return result
}

// AsMap returns map representation of supplied value or nil
func AsMap(value interface{}) map[string]interface{} {
	return asMap(value)
}
