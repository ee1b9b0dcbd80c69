package members

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldReason classifies why a field failed validation.
type FieldReason string

const (
	ReasonRequired      FieldReason = "Required"
	ReasonInvalidFormat FieldReason = "InvalidFormat"
	ReasonInvalidEnum   FieldReason = "InvalidEnum"
	ReasonEmptyUpdate   FieldReason = "EmptyUpdate"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field  string
	Reason FieldReason
}

// ValidationError aggregates the field-level failures of one payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		if f.Field == "" {
			parts[i] = string(f.Reason)
			continue
		}
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "dateonly", func(fl validator.FieldLevel) bool {
		return dateOnlyRe.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// ValidateCreate checks a create payload against the member rules. It is pure
// and synchronous; callers run it before issuing any network call. The
// returned error, if non-nil, is a *ValidationError with per-field reasons.
func ValidateCreate(input CreateMemberInput) error {
	return toValidationError(validate.Struct(input))
}

// ValidateUpdate checks a partial update payload: supplied fields follow the
// same per-field rules as creation, unsupplied fields are skipped, and a
// payload with zero supplied fields fails with EmptyUpdate.
func ValidateUpdate(input UpdateMemberInput) error {
	if input.IsEmpty() {
		return &ValidationError{Fields: []FieldError{{Reason: ReasonEmptyUpdate}}}
	}
	return toValidationError(validate.Struct(input))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Reason: reasonForTag(fe.Tag())})
	}
	return &ValidationError{Fields: fields}
}

func reasonForTag(tag string) FieldReason {
	switch tag {
	case "notblank", "required":
		return ReasonRequired
	case "dateonly":
		return ReasonInvalidFormat
	case "oneof":
		return ReasonInvalidEnum
	default:
		return ReasonInvalidFormat
	}
}
