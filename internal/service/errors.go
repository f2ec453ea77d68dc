package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrInvalidEditCode      = errors.New("invalid edit code")
)

// ValidationError reports a single rejected input value: category,
// pagination bound, date format, or a malformed identifier.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// FieldValidationError reports every violated body-field constraint at
// once, keyed by field name.
type FieldValidationError struct {
	Fields map[string]string
}

func (e *FieldValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// NotificationError signals a failed confirmation delivery. The write
// that preceded it is already committed.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return "confirmation delivery failed: " + e.Err.Error()
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
