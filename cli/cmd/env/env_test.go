package env

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowerai/backend/pkg/config"
)

func TestWriteDiagnostics(t *testing.T) {
	t.Run("Should print masked values and missing variables", func(t *testing.T) {
		d := &config.Diagnostics{
			WorkingDir:   "/srv",
			EnvFile:      ".env",
			EnvFileFound: true,
			Vars: []config.EnvEntry{
				{Name: "DATABASE_URL", Value: "***@db:5432/users", Set: true},
				{Name: "SECRET_KEY"},
			},
		}
		var buf bytes.Buffer
		require.NoError(t, WriteDiagnostics(&buf, d))
		out := buf.String()
		assert.Contains(t, out, "Env file: .env (found)")
		assert.Contains(t, out, "DATABASE_URL: ***@db:5432/users")
		assert.Contains(t, out, "SECRET_KEY: NOT SET")
		assert.NotContains(t, out, "password")
	})
}
