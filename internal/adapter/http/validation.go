package http

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	domainProject "coop-loan-backend/internal/domain/project"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reMemberNumber = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report field names the way clients send them
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// money figure: non-negative decimal, thousands separators allowed
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, err := domainProject.ParseAmount(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
	_ = v.RegisterValidation("member_number", func(fl validator.FieldLevel) bool {
		return reMemberNumber.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		out = append(out, FieldError{Field: fieldPath(e), Message: fieldMessage(e)})
	}
	return out
}

// fieldPath drops the struct name: CollateralInput.properties[0].owner_name
// becomes properties[0].owner_name.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "amount":
		return "must be a non-negative decimal amount"
	case "member_number":
		return "may only contain letters, digits and hyphens"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + e.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "max":
		if e.Kind() == reflect.Slice {
			return "must contain at most " + e.Param() + " items"
		}
		return "must be at most " + e.Param() + " characters"
	case "min":
		if e.Kind() == reflect.Slice {
			return "must contain at least " + e.Param() + " items"
		}
		return "must be at least " + e.Param() + " characters"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return e.Tag() + " validation failed"
	}
}
