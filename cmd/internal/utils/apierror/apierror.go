// Package apierror is the error envelope handed from services to routes.
// Handlers render it directly: c.JSON(apierr.Code(), apierr).
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *simpleError) Error() string { return e.Message }
func (e *simpleError) Code() int     { return e.Status }

var (
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")
	NotFoundError       = NewSimple(http.StatusNotFound, "Resource not found")
	MalformedBodyError  = NewSimple(http.StatusBadRequest, "Malformed request body")
)

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{Status: code, Message: message}
}

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter: %s", name))
}

// NewWriteFailure carries the backend's own message up to the caller, so
// the failure acknowledgment can show it.
func NewWriteFailure(action string, err error) ErrorResponse {
	return NewSimple(http.StatusInternalServerError, fmt.Sprintf("Failed to %s: %s", action, err.Error()))
}

type validationError struct {
	Status  int      `json:"-"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (e *validationError) Error() string { return e.Message }
func (e *validationError) Code() int     { return e.Status }

func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fmt.Sprintf("%s: failed '%s' validation", fe.Field(), fe.Tag())
	}
	return &validationError{
		Status:  http.StatusBadRequest,
		Message: "Request validation failed",
		Fields:  fields,
	}
}
