package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ValidationError carries field-keyed messages for a rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// ConflictError signals a uniqueness violation (seat already taken,
// duplicate route, duplicate name).
type ConflictError struct {
	Resource string
	Detail   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Detail)
}

func NewConflict(resource, detail string) *ConflictError {
	return &ConflictError{Resource: resource, Detail: detail}
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// AuthzError is an opaque forbidden signal.
type AuthzError struct{}

func (e *AuthzError) Error() string { return "forbidden" }

var ErrForbidden = &AuthzError{}

// FromDB maps storage-level errors onto the domain taxonomy. Unique and
// foreign-key violations are recognized for the postgres driver (pq error
// codes) and for the sqlite dialect used in tests (constraint messages).
// Anything else passes through unchanged.
func FromDB(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFound(resource, "")
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return NewConflict(resource, pqErr.Detail)
		case "23503": // foreign_key_violation
			return NewNotFound(resource, pqErr.Detail)
		case "23514": // check_violation
			return NewValidation(resource, pqErr.Detail)
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return NewConflict(resource, msg)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return NewNotFound(resource, "")
	case strings.Contains(msg, "CHECK constraint failed"):
		return NewValidation(resource, msg)
	}
	return err
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
