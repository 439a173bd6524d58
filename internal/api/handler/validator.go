package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one collected validation failure, returned to the client in
// the envelope's errors list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// ValidationErrors is the full set of failures for one request. Validation
// is not fail-fast: every failing field is reported.
type ValidationErrors struct {
	Fields []FieldError
}

func (ve *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve.Fields))
	for _, fe := range ve.Fields {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface. Struct failures come back
// as *ValidationErrors with one entry per failing field.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := &ValidationErrors{Fields: make([]FieldError, 0, len(ve))}
			for _, fe := range ve {
				out.Fields = append(out.Fields, FieldError{
					Field:   strings.ToLower(fe.Field()),
					Message: fieldError(fe),
				})
			}
			return out
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in the format %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
