// Package validation checks builder state against struct tags and reports
// violations as precondition errors.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json names so errors match the wire field.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}

			return name
		})
	})

	return validate
}

// Struct validates s using its `validate` tags. It returns nil or a
// comms.PreconditionErrors listing every violated constraint.
func Struct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return comms.NewPreconditionError("", err.Error())
	}

	violations := make(comms.PreconditionErrors, 0, len(validationErrors))
	for _, e := range validationErrors {
		violations = append(violations, comms.NewPreconditionError(e.Field(), constraint(e)))
	}

	return violations
}

// Join merges precondition errors from several checks. Nil inputs are
// skipped; the result is nil when nothing failed.
func Join(errs ...error) error {
	var violations comms.PreconditionErrors

	for _, err := range errs {
		if err == nil {
			continue
		}

		var multi comms.PreconditionErrors
		var single *comms.PreconditionError

		switch {
		case errors.As(err, &multi):
			violations = append(violations, multi...)
		case errors.As(err, &single):
			violations = append(violations, single)
		default:
			violations = append(violations, comms.NewPreconditionError("", err.Error()))
		}
	}

	if len(violations) == 0 {
		return nil
	}

	return violations
}

func constraint(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "required_if", "required_unless":
		return "is required for this " + strings.ToLower(strings.SplitN(e.Param(), " ", 2)[0])
	case "excluded_with":
		return "must not be set together with " + strings.ToLower(e.Param())
	case "gte":
		return "must be >= " + e.Param()
	case "lte":
		return "must be <= " + e.Param()
	case "gt":
		return "must be > " + e.Param()
	case "min":
		return "must have at least " + e.Param() + " entries"
	case "max":
		return "must have at most " + e.Param() + " entries"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "failed " + e.Tag() + " check"
	}
}
