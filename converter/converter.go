package converter

import (
	"encoding/json"
	"fmt"
	"github.com/viant/toolbox"
	"math"
	"strconv"
	"strings"
)

// Type represents a placeholder coercion type
type Type string

const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
	TypeJSON    Type = "json"
	TypeAuto    Type = "auto"
)

// ParseType returns a type for supplied tag, empty tag is auto
func ParseType(tag string) (Type, error) {
	switch Type(tag) {
	case "":
		return TypeAuto, nil
	case TypeString, TypeBoolean, TypeNumber, TypeJSON, TypeAuto:
		return Type(tag), nil
	}
	return "", fmt.Errorf("unsupported type: %v, supported: [string, boolean, number, json, auto]", tag)
}

// Coerce converts raw request value to supplied type
func Coerce(raw string, typ Type) (interface{}, error) {
	switch typ {
	case TypeString:
		return raw, nil
	case TypeBoolean:
		return strings.EqualFold(raw, "true"), nil
	case TypeNumber:
		if number, ok := ParseNumber(raw); ok {
			return number, nil
		}
		return math.NaN(), nil
	case TypeJSON:
		var value interface{}
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, &Error{Raw: raw, Type: typ, Origin: err}
		}
		return value, nil
	}
	return auto(raw), nil
}

// CoerceValue converts already decoded value (i.e. JSON body field) to supplied type
func CoerceValue(value interface{}, typ Type) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if text, ok := value.(string); ok {
		return Coerce(text, typ)
	}
	switch typ {
	case TypeString:
		if toolbox.IsMap(value) || toolbox.IsSlice(value) {
			data, err := json.Marshal(value)
			if err != nil {
				return nil, &Error{Raw: fmt.Sprintf("%v", value), Type: typ, Origin: err}
			}
			return string(data), nil
		}
		if number, ok := value.(float64); ok {
			return strconv.FormatFloat(number, 'f', -1, 64), nil
		}
		return toolbox.AsString(value), nil
	case TypeBoolean:
		if flag, ok := value.(bool); ok {
			return flag, nil
		}
		return false, nil
	case TypeNumber:
		number, err := toolbox.ToFloat(value)
		if err != nil {
			return math.NaN(), nil
		}
		return number, nil
	}
	return value, nil
}

func auto(raw string) interface{} {
	if number, ok := ParseNumber(raw); ok {
		return number
	}
	switch raw {
	case "TRUE", "true":
		return true
	case "FALSE", "false":
		return false
	}
	if value, ok := asJSONObject(raw); ok {
		return value
	}
	return raw
}

func asJSONObject(raw string) (interface{}, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil, false
	}
	var value interface{}
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return nil, false
	}
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		return value, true
	}
	return nil, false
}

// ParseNumber performs loose numeric conversion: surrounding spaces are ignored, empty text is 0,
// decimal/exponent notation, 0x/0o/0b integer literals and Infinity are accepted. NaN is never reported as a number.
func ParseNumber(raw string) (float64, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, true
	}
	switch text {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			if strings.Contains(text, "_") {
				return 0, false
			}
			value, err := strconv.ParseUint(text, 0, 64)
			if err != nil {
				return 0, false
			}
			return float64(value), true
		}
	}
	for _, r := range text {
		if !(r >= '0' && r <= '9') && r != '.' && r != '-' && r != '+' && r != 'e' && r != 'E' {
			return 0, false
		}
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) {
		return 0, false
	}
	return value, true
}
