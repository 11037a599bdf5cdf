package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator library with form-friendly error output.
type Validator struct {
	cli *validator.Validate
}

// FieldError is one failed rule on one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// New initializes and returns a new Validator.
func New() *Validator {
	return &Validator{
		cli: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Struct validates s and returns one FieldError per failed field, with a
// message short enough to render inline next to a text input.
func (v *Validator) Struct(s interface{}) []FieldError {
	err := v.cli.Struct(s)
	if err == nil {
		return nil
	}

	errs := make([]FieldError, 0)
	for _, fe := range err.(validator.ValidationErrors) {
		errs = append(errs, FieldError{
			Field:   fe.StructField(),
			Message: messageFor(fe),
		})
	}
	return errs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "eqfield":
		return "does not match"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
