package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the failure class a handler maps to an HTTP response.
type Code string

const (
	CodeValidation         Code = "validation"
	CodeNotFound           Code = "not_found"
	CodeBackendUnavailable Code = "backend_unavailable"
	CodeStore              Code = "store"
	CodePartialFailure     Code = "partial_failure"
)

type Error struct {
	Status int
	Code   Code
	Err    error

	// Details carries per-item outcomes for partial batch failures.
	Details []ItemFailure
}

type ItemFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return string(e.Code)
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code Code, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func BackendUnavailable(provider string, err error) *Error {
	return New(http.StatusInternalServerError, CodeBackendUnavailable, fmt.Errorf("%s: %w", provider, err))
}

func Store(err error) *Error {
	return New(http.StatusInternalServerError, CodeStore, err)
}

func Partial(err error, details []ItemFailure) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodePartialFailure,
		Err:     err,
		Details: details,
	}
}

// From normalizes any error to an *Error. Unknown errors become store errors,
// so a transient database failure is never mistaken for not-found.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Store(err)
}

func IsCode(err error, code Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
