package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
)

// AsValidationError converts the first validator failure into an
// apperrors validation error naming the JSON field.
func AsValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", fe.Field())
	case "branch":
		msg = fmt.Sprintf("unknown branch %q", fe.Value())
	case "gte":
		msg = fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return apperrors.NewValidationError(fe.Field(), msg)
}
