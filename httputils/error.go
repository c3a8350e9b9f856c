package httputils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorStatusCoder interface {
	ErrorStatusCode() int
}

type ErrorMessager interface {
	ErrorMessage() string
}

type ErrorObjecter interface {
	ErrorObject() interface{}
}

type (
	// Error represents an error with http status
	Error struct {
		StatusCode int         `json:",omitempty"`
		Message    string      `json:",omitempty"`
		Object     interface{} `json:",omitempty"`
		Err        error       `json:"-"`
	}

	Option func(e *Error)
)

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) ErrorStatusCode() int {
	return e.StatusCode
}

func (e *Error) ErrorMessage() string {
	return e.Error()
}

func (e *Error) ErrorObject() interface{} {
	return e.Object
}

func WithObject(object interface{}) Option {
	return func(e *Error) {
		e.Object = object
	}
}

func WithError(err error) Option {
	return func(e *Error) {
		e.Err = err
	}
}

// NewError creates an error with status code
func NewError(statusCode int, message string, opts ...Option) *Error {
	ret := &Error{StatusCode: statusCode, Message: message}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// NewNotFound creates not found error for supplied entity
func NewNotFound(entity string) *Error {
	return NewError(http.StatusNotFound, fmt.Sprintf("%v not found", entity))
}

// IsNotFound returns true if error carries not found status
func IsNotFound(err error) bool {
	statusCode, _ := BuildErrorResponse(err)
	return statusCode == http.StatusNotFound
}

// BuildErrorResponse returns status code and message for supplied error, status defaults to 500
func BuildErrorResponse(err error) (statusCode int, errorMessage string) {
	statusCode = http.StatusInternalServerError
	if err == nil {
		return statusCode, ""
	}
	errorMessage = err.Error()

	var messager ErrorMessager
	if errors.As(err, &messager) {
		errorMessage = messager.ErrorMessage()
	}

	var coder ErrorStatusCoder
	if errors.As(err, &coder) {
		if code := coder.ErrorStatusCode(); code != 0 {
			statusCode = code
		}
	}

	return statusCode, errorMessage
}
