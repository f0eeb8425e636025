package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"backoffice/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names so errors match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct runs the validate tags on payload and returns every failure as
// a FieldError. A nil slice means the payload passed.
func checkStruct(payload any) ([]domain.FieldError, error) {
	err := validate.Struct(payload)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return out, nil
}

// validateStruct is checkStruct folded into a single ValidationError.
func validateStruct(payload any) error {
	fields, err := checkStruct(payload)
	if err != nil {
		return domain.ValidationError{Msg: "invalid payload", Err: err}
	}
	return validationError(fields)
}

// validationError returns nil for no fields, otherwise a ValidationError led
// by the first failure.
func validationError(fields []domain.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return domain.ValidationError{Field: fields[0].Field, Msg: fields[0].Message, Fields: fields}
}

// fieldPath drops the struct name from the namespace:
// "BookingPayload.customDetails.budgetRange" -> "customDetails.budgetRange".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "email":
		return "must be a valid email address"
	case "mongodb":
		return "must be a valid id"
	case "min":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func isCollection(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array || k == reflect.Map
}

// mergeFieldErrors appends extra to base, skipping fields already reported.
func mergeFieldErrors(base []domain.FieldError, extra ...domain.FieldError) []domain.FieldError {
	seen := make(map[string]bool, len(base))
	for _, f := range base {
		seen[f.Field] = true
	}
	for _, f := range extra {
		if seen[f.Field] {
			continue
		}
		seen[f.Field] = true
		base = append(base, f)
	}
	return base
}
