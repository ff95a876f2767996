package user

import (
	"errors"
	"fmt"

	"github.com/slowerai/backend/engine/core"
)

// Domain errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

const ErrCodeValidation = "VALIDATION_ERROR"

// NewValidationError reports a required field that was missing or empty.
func NewValidationError(field string) *core.Error {
	return core.NewError(
		fmt.Errorf("%s is required", field),
		ErrCodeValidation,
		map[string]any{"field": field},
	)
}

// IsValidation reports whether err carries a validation code.
func IsValidation(err error) bool {
	var coreErr *core.Error
	return errors.As(err, &coreErr) && coreErr.Code == ErrCodeValidation
}
