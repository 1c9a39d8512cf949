package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Message
}

// CrossValidator is implemented by request types that carry rules spanning
// multiple fields, beyond what struct tags can express.
type CrossValidator interface {
	CrossValidate() []FieldError
}

// Validator validates request objects and reports field-level failures.
// An empty slice means the request is valid.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with json tag names used in error reporting.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate runs tag rules and any cross-field rules the request defines.
func (v *Validator) Validate(req any) []FieldError {
	var errs []FieldError
	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = append(errs, FieldError{Field: fe.Field(), Message: message(fe)})
			}
		} else {
			errs = append(errs, FieldError{Field: "", Message: err.Error()})
		}
	}
	if cv, ok := req.(CrossValidator); ok {
		errs = append(errs, cv.CrossValidate()...)
	}
	return errs
}

// Join flattens failures into the single message surfaced in the response
// envelope.
func Join(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Message
	}
	return strings.Join(parts, ",")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email address format."
	case "max":
		return fmt.Sprintf("%s should not exceed %s character length.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
