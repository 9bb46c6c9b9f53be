package apperr

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching at the delivery edge.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate")
	ErrRemoteService = errors.New("remote service failure")
)

// ValidationError reports a missing or invalid field on a store or tool call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// MissingField is the ValidationError raised when a required field is absent.
func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a lookup by id or email that matched nothing.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// DuplicateError reports a unique constraint violation (user email, order id).
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

func Duplicate(entity, field, value string) *DuplicateError {
	return &DuplicateError{Entity: entity, Field: field, Value: value}
}

// RemoteServiceError wraps a non-2xx response or a network failure from a vendor call.
type RemoteServiceError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *RemoteServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned status %d: %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *RemoteServiceError) Unwrap() error { return e.Err }

func (e *RemoteServiceError) Is(target error) bool { return target == ErrRemoteService }

func Remote(service string, status int, err error) *RemoteServiceError {
	return &RemoteServiceError{Service: service, StatusCode: status, Err: err}
}

// IsDomain reports whether err is one of the taxonomy errors above. Anything
// else coming out of a store is treated as the backend being unavailable.
func IsDomain(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate)
}
