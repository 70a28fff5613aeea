package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the typed failure every service returns. Code is the HTTP
// status the responder answers with; Err keeps the cause for logging.
type AppError struct {
	Code    int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(code int, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Err: cause}
}

func NewNotFound(message string) *AppError {
	return newAppError(http.StatusNotFound, message, nil)
}

func NewConflict(message string) *AppError {
	return newAppError(http.StatusConflict, message, nil)
}

func NewBadRequest(message string, cause error) *AppError {
	return newAppError(http.StatusBadRequest, message, cause)
}

func NewUnauthorized(message string, cause error) *AppError {
	return newAppError(http.StatusUnauthorized, message, cause)
}

// NewDispatchError reports an email transport failure. The client only sees
// a generic server error.
func NewDispatchError(cause error) *AppError {
	return newAppError(http.StatusInternalServerError, "failed to send verification email", cause)
}

func NewInternal(message string, cause error) *AppError {
	return newAppError(http.StatusInternalServerError, message, cause)
}

// NewValidation carries per-field messages produced by ValidateStruct.
func NewValidation(fields map[string]string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// AsAppError unwraps err into an *AppError. Anything else becomes a 500.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("Internal server error", err)
}
