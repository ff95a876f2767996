package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEnvMappings(t *testing.T) {
	t.Run("Should map every documented variable", func(t *testing.T) {
		m := GenerateEnvToConfigMap()
		expected := map[string]string{
			"SERVER_HOST":                 "server.host",
			"SERVER_PORT":                 "server.port",
			"SERVER_CORS_ALLOWED_ORIGINS": "server.cors_allowed_origins",
			"DATABASE_URL":                "database.url",
			"DB_HOST":                     "database.host",
			"DB_SSL_MODE":                 "database.ssl_mode",
			"DB_SEED_SAMPLE_DATA":         "database.seed_sample_data",
			"APP_ENV":                     "runtime.environment",
			"LOG_LEVEL":                   "runtime.log_level",
			"SECRET_KEY":                  "runtime.secret_key",
			"USERS_PER_PAGE":              "users.per_page",
			"USERS_MAX_PER_PAGE":          "users.max_per_page",
		}
		for env, path := range expected {
			assert.Equal(t, path, m[env], env)
		}
	})

	t.Run("Should resolve the variable for a path", func(t *testing.T) {
		assert.Equal(t, "DB_PASSWORD", GetEnvVarForConfigPath("database.password"))
		assert.Empty(t, GetEnvVarForConfigPath("database.nope"))
	})

	t.Run("Should flag sensitive paths", func(t *testing.T) {
		assert.True(t, IsSensitiveConfigPath("database.url"))
		assert.True(t, IsSensitiveConfigPath("runtime.secret_key"))
		assert.False(t, IsSensitiveConfigPath("database.host"))
		assert.False(t, IsSensitiveConfigPath("server"))
	})
}
