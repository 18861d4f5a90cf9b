package domain

import (
	"errors"
	"fmt"
)

// Failure kinds of a marketplace API call. Match them with errors.Is.
var (
	ErrTransport         = errors.New("transport failure")
	ErrAuthExpired       = errors.New("authentication expired")
	ErrRejected          = errors.New("request rejected")
	ErrMalformedEnvelope = errors.New("malformed response envelope")
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
)

// APIError is a failed call to the marketplace API. Kind is one of the failure
// sentinels; Status is zero when no response was received.
type APIError struct {
	Kind    error
	Status  int
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Status != 0:
		return fmt.Sprintf("request failed with status code %d", e.Status)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.Error()
	}
}

func (e *APIError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Rejection builds the error for an explicit {success:false} envelope.
func Rejection(status int, message string, fields map[string][]string) *APIError {
	return &APIError{Kind: ErrRejected, Status: status, Message: message, Fields: fields}
}

// ErrorMessage picks the text shown to the user: the backend message when one
// was provided, then the error text, then fallback.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// StatusOf returns the upstream HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// FieldErrors returns the per-field validation messages carried by err.
func FieldErrors(err error) map[string][]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}
