package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., optimistic locking)
	ErrConflict = errors.New("conflict occurred")

	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")

	// ErrInsufficientStock is returned when a product cannot cover a requested quantity
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrProductUnavailable is returned when an inactive product is ordered
	ErrProductUnavailable = errors.New("product unavailable")

	// ErrInvalidTransition is returned when an order status change is not allowed
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTransient is returned when a consistency race persisted after bounded retries
	ErrTransient = errors.New("temporary failure, please retry")

	// ErrInvalidSignature is returned when a payment webhook fails verification
	ErrInvalidSignature = errors.New("invalid signature")
)

// FieldError describes a single invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field-level problem found in a request
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError from field/message pairs
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// StockError reports a product that cannot cover the requested quantity
type StockError struct {
	ProductID uuid.UUID
	Name      string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d", e.Name, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// UnavailableError reports an inactive product in a checkout request
type UnavailableError struct {
	ProductID uuid.UUID
	Name      string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("Product %s is no longer available", e.Name)
}

func (e *UnavailableError) Unwrap() error { return ErrProductUnavailable }

// TransitionError reports a rejected order status change
type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
