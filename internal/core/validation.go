// AngelaMos | 2026
// validation.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// NewValidator returns a validator that reports JSON field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// ValidateStruct runs v against s and returns an AppError carrying
// per-field messages when it fails.
func ValidateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	fields := FieldErrors(err)
	if len(fields) == 0 {
		return ValidationError(err.Error(), nil)
	}

	return ValidationError("validation failed", fields)
}

// FieldErrors maps each failing field path to readable messages.
func FieldErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe)
		fields[path] = append(fields[path], describe(fe))
	}
	return fields
}

func FormatValidationError(err error) string {
	fields := FieldErrors(err)
	if len(fields) == 0 {
		return err.Error()
	}

	parts := make([]string, 0, len(fields))
	for path, msgs := range fields {
		parts = append(parts, path+": "+strings.Join(msgs, ", "))
	}
	return strings.Join(parts, "; ")
}

// DecodeAndValidate reads a JSON body into dst and validates it.
func DecodeAndValidate(
	w http.ResponseWriter,
	r *http.Request,
	v *validator.Validate,
	dst any,
) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ValidationError("invalid request body", nil)
	}
	return ValidateStruct(v, dst)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_with", "required_if":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if isStringKind(fe.Kind()) {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if isStringKind(fe.Kind()) {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "eqfield":
		return "must match " + jsonName(fe.Param())
	case "gtfield":
		return "must be after " + jsonName(fe.Param())
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "e164":
		return "must be a valid phone number"
	case "datetime":
		return "must be a date in the format " + fe.Param()
	case "alphanum":
		return "must contain only letters and digits"
	case "date_after":
		return "must be after " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func isStringKind(k reflect.Kind) bool {
	return k == reflect.String
}

// jsonName converts a Go field name parameter to the snake_case name used on the wire.
func jsonName(goName string) string {
	var b strings.Builder
	for i, r := range goName {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
