package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBasePrice  = errors.New("base price must be a finite number >= 0")
	ErrInvalidQuantity   = errors.New("quantity must be >= 1")
	ErrUnknownKind       = errors.New("unknown offer kind")
	ErrUnknownPriceMode  = errors.New("unknown offer price mode")
	ErrInvalidPriceValue = errors.New("invalid offer price value")
	ErrInvalidUnits      = errors.New("unit counts must be >= 0")
	ErrInvalidWindow     = errors.New("offer validity window is invalid")
	ErrAmountOutOfRange  = errors.New("computed amount is out of range")
)

// ValidationError reports which input was rejected before any arithmetic ran.
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (%v): %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, value interface{}, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: err}
}
