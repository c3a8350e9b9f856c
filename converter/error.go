package converter

import (
	"fmt"
	"net/http"
)

// Error represents coercion error
type Error struct {
	Raw    string
	Type   Type
	Origin error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to convert %q to %v: %v", e.Raw, e.Type, e.Origin)
}

func (e *Error) Unwrap() error {
	return e.Origin
}

// ErrorStatusCode returns http status code, a malformed json value is not recoverable at this layer
func (e *Error) ErrorStatusCode() int {
	return http.StatusInternalServerError
}
