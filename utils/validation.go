package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the `validate` tags of v.
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return BadRequestError("Validation failed", err).WithDetails(fieldErrors(err))
	}
	return nil
}

// BindJSON decodes the request body into dest and checks its `binding` tags.
// Failures come back as a 400 AppError listing the offending fields.
func BindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return BadRequestError("Invalid request body", err).WithDetails(fieldErrors(err))
	}
	return nil
}

func fieldErrors(err error) interface{} {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	out := make(FieldValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldValidationError{Field: fieldPath(fe), Message: describe(fe)})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace, so
// "createDraftRequest.Items[0].Quantity" becomes "Items[0].Quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "dive":
		return "is invalid"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
