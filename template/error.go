package template

import "fmt"

// ConfigError represents invalid template definition
type ConfigError struct {
	Path   string
	Origin error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid template at %v: %v", e.Path, e.Origin)
}

func (e *ConfigError) Unwrap() error {
	return e.Origin
}
