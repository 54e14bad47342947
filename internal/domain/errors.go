package domain

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a referenced event or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner is returned when a mutation requires ownership the caller lacks.
	ErrNotOwner = errors.New("only the event creator may perform this action")
	// ErrInvalidInput covers malformed input that is not tied to a single field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTransient wraps storage timeouts and connection failures. Callers may
	// retry with backoff; the wrapped cause is preserved for logging.
	ErrTransient = errors.New("transient storage error")
)

// ValidationErrors maps a field name to a user-facing message. It is returned
// for recoverable input problems and is never treated as a fault.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return strings.Join(parts, "; ")
}

// AsValidationErrors unwraps err into ValidationErrors when possible.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
