package httputils

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Status represents error response payload
type Status struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// WriteJSON writes JSON payload with supplied status code, only encoding error is returned as nothing is written then
func WriteJSON(writer http.ResponseWriter, statusCode int, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return NewError(http.StatusInternalServerError, "failed to encode response", WithError(err))
	}
	writer.Header().Set("Content-Type", ContentTypeJSON)
	writer.WriteHeader(statusCode)
	_, _ = writer.Write(data)
	return nil
}

// WriteNoContent writes 204 with empty body
func WriteNoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// WriteError writes error status payload
func WriteError(writer http.ResponseWriter, err error) {
	statusCode, message := BuildErrorResponse(err)
	status := &Status{Status: "error", Message: message}
	var objecter ErrorObjecter
	if errors.As(err, &objecter) {
		if object := objecter.ErrorObject(); object != nil {
			status.Errors = object
		}
	}
	data, _ := json.Marshal(status)
	writer.Header().Set("Content-Type", ContentTypeJSON)
	writer.WriteHeader(statusCode)
	_, _ = writer.Write(data)
}
