package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrAccountLocked      = errors.New("account is locked")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
	ErrStaleResponse   = errors.New("superseded by a newer request")
)

// Upstream errors
var (
	ErrUpstreamUnavailable = errors.New("backend unavailable")
	ErrNotFound            = errors.New("resource not found")
)

// FieldErrors carries the backend's field-keyed validation messages through
// unmodified for field-level display. It is also produced locally when a form
// fails the client-side rules.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add appends a message for a field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// AsFieldErrors unwraps err into FieldErrors if it is one.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
