// Package apperr holds the error kinds shared by the order engine and the
// inventory reconciler. Callers branch on them with errors.Is / KindOf.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidData       = errors.New("invalid data")
	ErrItemsUnavailable  = errors.New("items unavailable")
	ErrRateNotFound      = errors.New("shipping rate not found")
	ErrPersistence       = errors.New("persistence failure")
	ErrDuplicateSize     = errors.New("duplicate size value")
	ErrDataNotFound      = errors.New("data not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrHandoff           = errors.New("handoff link generation failed")
)

type Kind string

const (
	KindValidation        Kind = "validation"
	KindItemsUnavailable  Kind = "items_unavailable"
	KindRateNotFound      Kind = "rate_not_found"
	KindPersistence       Kind = "persistence"
	KindConflict          Kind = "reconciliation_conflict"
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindHandoff           Kind = "handoff"
	KindTimeout           Kind = "timeout"
	KindInternal          Kind = "internal"
)

// KindOf maps err onto the taxonomy. Order matters: a persistence failure that
// wraps a deadline is reported as a timeout.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidData):
		return KindValidation
	case errors.Is(err, ErrItemsUnavailable):
		return KindItemsUnavailable
	case errors.Is(err, ErrRateNotFound):
		return KindRateNotFound
	case errors.Is(err, ErrDuplicateSize):
		return KindConflict
	case errors.Is(err, ErrDataNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrHandoff):
		return KindHandoff
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	default:
		return KindInternal
	}
}

// Retryable reports whether resubmitting the same request may succeed.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindPersistence, KindTimeout, KindHandoff:
		return true
	default:
		return false
	}
}

// Persistence wraps a store failure so callers see KindPersistence while the
// original cause stays reachable through errors.Is / errors.As.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrInvalidData.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidData }

// UnavailableError lists the requested products that are missing or disabled.
type UnavailableError struct {
	ProductIDs []string
}

func (e *UnavailableError) Error() string {
	return ErrItemsUnavailable.Error() + ": " + strings.Join(e.ProductIDs, ", ")
}

func (e *UnavailableError) Unwrap() error { return ErrItemsUnavailable }

// DuplicateSizeError names the repeated size value in a reconciliation request.
type DuplicateSizeError struct {
	Value string
}

func (e *DuplicateSizeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateSize.Error(), e.Value)
}

func (e *DuplicateSizeError) Unwrap() error { return ErrDuplicateSize }

// FromStore keeps errors that already carry a kind and marks anything else
// coming out of a store call as a persistence failure.
func FromStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) == KindInternal {
		return Persistence(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
