package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps struct field names to operator-facing messages.
type ValidationErrors map[string]string

func (v ValidationErrors) First() string {
	for _, msg := range v {
		return msg
	}
	return ""
}

// ProcessValidatorErrors flattens validator.ValidationErrors into per-field
// messages. Field labels default to the struct field name.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fieldErr := range errs {
		out[fieldErr.Field()] = messageFor(fieldErr)
	}
	return out
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "numeric":
		return fmt.Sprintf("%s must be numeric", fieldErr.Field())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fieldErr.Field(), fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fieldErr.Field(), fieldErr.Tag())
	}
}
