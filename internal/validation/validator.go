package validation

import (
	"errors"
	"reflect"
	"strings"

	"quizlink/internal/domain"
	"quizlink/internal/util"

	"github.com/go-playground/validator/v10"
)

// Validator validates request DTOs and reports failures as domain.ValidationErrors.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New()
	// Report JSON field names so clients see the keys they sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct runs the validate tags of s. It returns nil or domain.ValidationErrors.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewValidationError(err.Error())
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toDomainError(fe))
	}
	return out
}

func toDomainError(fe validator.FieldError) domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return domain.NewFieldError(field, field+" must not be empty")
		}
		return domain.NewMissingFieldError(field)
	case "email":
		return domain.NewInvalidFormatError(field, fe.Value(), "email address")
	case "min":
		return domain.ValidationError{Field: field, Code: domain.CodeOutOfRange, Message: field + " must have at least " + fe.Param() + " items", Value: fe.Value()}
	case "max":
		if fe.Kind() == reflect.String {
			return domain.ValidationError{Field: field, Code: domain.CodeOutOfRange, Message: field + " must be at most " + fe.Param() + " characters"}
		}
		return domain.ValidationError{Field: field, Code: domain.CodeOutOfRange, Message: field + " must have at most " + fe.Param() + " items"}
	default:
		return domain.NewFieldError(field, field+" failed "+fe.Tag()+" validation")
	}
}

// ID checks a path or body identifier is a well-formed ULID.
func (v *Validator) ID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if !util.IsULID(value) {
		return domain.ValidationErrors{domain.NewInvalidFormatError(field, value, "ULID")}
	}
	return nil
}
