// Package validate wraps go-playground/validator and reports the first
// failing field as a *domain.ValidationError.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// Validator checks tagged structs. Safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with struct tags read from `validate`.
//
// Besides the built-in tags it understands two string length checks:
//   - utf16min=N: at least N UTF-16 code units, the length browsers and
//     JavaScript clients report (an emoji counts as two).
//   - maxbytes=N: at most N bytes of UTF-8. bcrypt refuses input longer
//     than 72 bytes.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("utf16min", utf16Min)
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return &Validator{v: v}
}

func utf16Min(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf16Len(fl.Field().String()) >= limit
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 && r <= unicode.MaxRune {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Struct validates s. Field errors are converted into a *domain.ValidationError
// for the first field that failed; any other error is returned unchanged.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		field := strings.ToLower(fe.Field())
		return domain.NewValidationError(field, fieldError(field, fe))
	}
	return err
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Param() == "1" {
				return field + " must not be empty"
			}
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "utf16min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", field, fe.Param())
	case "url":
		return field + " must be a valid url"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
