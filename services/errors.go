package services

import (
	"errors"
	"fmt"

	"hotel-guest-service/models"
)

var (
	ErrGuestNotFound      = errors.New("guest not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// ValidationError reports malformed or missing input, field by field.
type ValidationError struct {
	Fields []models.FieldError
}

func NewValidationError(fields ...models.FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	switch len(e.Fields) {
	case 0:
		return "validation failed"
	case 1:
		return fmt.Sprintf("%s: %s", e.Fields[0].Field, e.Fields[0].Message)
	default:
		return fmt.Sprintf("%s: %s (and %d more errors)", e.Fields[0].Field, e.Fields[0].Message, len(e.Fields)-1)
	}
}
