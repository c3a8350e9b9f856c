package template

import (
	"fmt"
	"github.com/viant/crudly/converter"
	"strings"
)

// Marker starts every placeholder: $key or $key$type
const Marker = "$"

// Placeholder represents request value reference
type Placeholder struct {
	Key  string
	Type converter.Type
}

// IsPlaceholder returns true if value is a placeholder candidate
func IsPlaceholder(value interface{}) bool {
	text, ok := value.(string)
	return ok && strings.HasPrefix(text, Marker)
}

// ParsePlaceholder parses $key or $key$type expression
func ParsePlaceholder(text string) (*Placeholder, error) {
	if !strings.HasPrefix(text, Marker) {
		return nil, fmt.Errorf("invalid placeholder %q: expected %v prefix", text, Marker)
	}
	expr := text[len(Marker):]
	key, tag := expr, ""
	if index := strings.Index(expr, Marker); index != -1 {
		key, tag = expr[:index], expr[index+len(Marker):]
	}
	if key == "" {
		return nil, fmt.Errorf("invalid placeholder %q: request key was empty", text)
	}
	typ, err := converter.ParseType(tag)
	if err != nil {
		return nil, fmt.Errorf("invalid placeholder %q: %w", text, err)
	}
	return &Placeholder{Key: key, Type: typ}, nil
}

func (p *Placeholder) String() string {
	return Marker + p.Key + Marker + string(p.Type)
}
