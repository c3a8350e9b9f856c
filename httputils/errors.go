package httputils

import (
	"net/http"
	"sync"
)

const (
	priorityDefault = iota
	priority400
	priority404
	priority403
	priority401
)

// Violation represents a single validation failure
type Violation struct {
	Location string      `json:",omitempty"`
	Field    string      `json:",omitempty"`
	Value    interface{} `json:",omitempty"`
	Check    string      `json:",omitempty"`
	Message  string      `json:",omitempty"`
}

// Errors collects errors, supports parallel errors collecting
type Errors struct {
	Message    string       `json:",omitempty"`
	Violations []*Violation `json:",omitempty"`
	Errors     []*Error     `json:",omitempty"`
	mutex      sync.Mutex
	status     int
}

func NewErrors() *Errors {
	return &Errors{}
}

func (e *Errors) ErrorStatusCode() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.status == 0 && len(e.Violations) > 0 {
		return http.StatusBadRequest
	}
	return e.status
}

func (e *Errors) ErrorObject() interface{} {
	return e.Violations
}

func (e *Errors) HasError() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return len(e.Errors) > 0 || len(e.Violations) > 0
}

func (e *Errors) AddViolation(violation *Violation) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.Violations = append(e.Violations, violation)
	if e.Message == "" {
		e.Message = violation.Message
	}
}

func (e *Errors) Append(err error) {
	if err == nil {
		return
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	switch actual := err.(type) {
	case *Error:
		e.Errors = append(e.Errors, actual)
		e.updateStatusCode(actual.StatusCode)
	default:
		statusCode, message := BuildErrorResponse(err)
		e.Errors = append(e.Errors, &Error{Message: message, Err: err, StatusCode: statusCode})
		e.updateStatusCode(statusCode)
	}
}

func (e *Errors) SetStatus(code int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.updateStatusCode(code)
}

func (e *Errors) updateStatusCode(code int) {
	if statusCodePriority(code) > statusCodePriority(e.status) {
		e.status = code
	}
}

func (e *Errors) Error() string {
	if e.Message == "" && len(e.Errors) > 0 {
		return e.Errors[0].Error()
	}
	return e.Message
}

func statusCodePriority(status int) int {
	switch status {
	case http.StatusUnauthorized:
		return priority401
	case http.StatusForbidden:
		return priority403
	case http.StatusNotFound:
		return priority404
	case http.StatusBadRequest:
		return priority400
	case 0:
		return -1
	default:
		return priorityDefault
	}
}
