package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a write rejected by a unique index.
	ErrConflict = errors.New("unique constraint conflict")
)

// NotFoundError names the resource kind that could not be resolved.
type NotFoundError struct {
	Kind ResourceKind
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found.", e.Kind)
}

// Is makes errors.Is(err, ErrNotFound) true for any kind.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind ResourceKind) error {
	return &NotFoundError{Kind: kind}
}

// ConflictError is returned when a unique field collides at write time.
type ConflictError struct {
	Kind  ResourceKind
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with this %s already exists.", e.Kind, e.Field)
}

// Is makes errors.Is(err, ErrConflict) true.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ValidationErrors maps a field name to its messages.
type ValidationErrors map[string][]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(v[field], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a message for field.
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Err returns nil when no messages were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// translateWriteError converts unique index violations into a ConflictError.
// The sqlite driver only translates some constraint codes, so the driver
// message is checked as well.
func translateWriteError(err error, kind ResourceKind, field string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return &ConflictError{Kind: kind, Field: field}
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key value")
}
