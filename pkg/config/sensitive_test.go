package config

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitiveString(t *testing.T) {
	t.Run("Should redact non-empty values", func(t *testing.T) {
		s := SensitiveString("secret-password-123")
		assert.Equal(t, "[REDACTED]", s.String())
		assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
		assert.Equal(t, "secret-password-123", s.Value())
	})

	t.Run("Should return empty string for empty values", func(t *testing.T) {
		assert.Equal(t, "", SensitiveString("").String())
	})

	t.Run("Should marshal as redacted string", func(t *testing.T) {
		data, err := json.Marshal(Default().Database)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "username:password")
		assert.Contains(t, string(data), `"URL":"[REDACTED]"`)
	})
}
