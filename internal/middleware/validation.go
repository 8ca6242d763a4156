package middleware

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator builds the shared validator. Field names in error
// reports use the json tag so they match what the frontend sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// DecodeAndValidate decodes a JSON request body into v and validates it
// against its struct tags.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return validate.Struct(v)
}

// ValidationError is a single field-level validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatValidationErrors flattens validator errors into field/message
// pairs. Non-validator errors (such as decode failures) yield nil.
func FormatValidationErrors(err error) []ValidationError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	formatted := make([]ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		formatted = append(formatted, ValidationError{
			Field:   e.Field(),
			Message: fieldErrorMessage(e),
		})
	}
	return formatted
}

func fieldErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_without":
		return "this field is required"
	case "email":
		return "invalid email address"
	case "url":
		return "invalid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "min":
		return "too short, minimum is " + e.Param()
	case "max":
		return "too long, maximum is " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "lt":
		return "must be less than " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	default:
		return "invalid value"
	}
}
