package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrProtectedDelete is returned when deleting a record that other records
// depend on in a protected manner (e.g. the current default group of an
// organization).
var ErrProtectedDelete = errors.New("record is protected and cannot be deleted")

// ValidationError is a field-scoped validation failure. Each entry maps a
// field name to one or more messages so that callers (admin UI, HTTP API) can
// attribute the failure to a specific form field.
type ValidationError struct {
	// Fields maps a field name to its validation messages.
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready to collect
// field messages.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for the given field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasField reports whether the error carries at least one message for field.
func (e *ValidationError) HasField(field string) bool {
	return len(e.Fields[field]) > 0
}

// Empty reports whether no field messages were collected.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Error implements the error interface. Fields are sorted so the message is
// deterministic.
func (e *ValidationError) Error() string {
	if e.Empty() {
		return "validation failed"
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

// AsValidationError unwraps err into a ValidationError if possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}

	return nil, false
}
