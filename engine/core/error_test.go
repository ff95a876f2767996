package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("Should expose cause through errors.Is", func(t *testing.T) {
		cause := errors.New("username is required")
		err := NewError(cause, "VALIDATION_ERROR", map[string]any{"field": "username"})
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "VALIDATION_ERROR: username is required", err.Error())
	})

	t.Run("Should be matched with errors.As after wrapping", func(t *testing.T) {
		wrapped := errors.Join(errors.New("outer"), NewError(errors.New("inner"), "CODE", nil))
		var coreErr *Error
		assert.True(t, errors.As(wrapped, &coreErr))
		assert.Equal(t, "CODE", coreErr.Code)
	})
}
