package params

import (
	"fmt"
	"time"
)

// ValidationError reports a missing or malformed operation argument. It is
// returned before any request is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// Missing returns a ValidationError for a required field that was not set.
func Missing(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

// Invalid returns a ValidationError with a custom reason.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Required fails with a ValidationError when value is empty.
func Required(field, value string) error {
	if value == "" {
		return Missing(field)
	}
	return nil
}

// RequiredList fails with a ValidationError when values is empty or holds an
// empty element.
func RequiredList[T ~string](field string, values []T) error {
	if len(values) == 0 {
		return &ValidationError{Field: field, Reason: "at least one value is required"}
	}
	for i, v := range values {
		if v == "" {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("value %d is empty", i+1)}
		}
	}
	return nil
}

// RequiredPositive fails with a ValidationError when n is not positive.
func RequiredPositive(field string, n int) error {
	if n <= 0 {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be positive (got %d)", n)}
	}
	return nil
}

// TimeRange fails with a ValidationError on field when both bounds are set
// and to is before from.
func TimeRange(field string, from, to time.Time) error {
	if from.IsZero() || to.IsZero() || !to.Before(from) {
		return nil
	}
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("must not be before %s", FormatTime(from)),
	}
}

// First returns the first non-nil error, so builders can check several
// required fields in one statement.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
