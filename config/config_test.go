package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv sets an environment variable for the duration of the test
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	setEnv(t, "GO_ENV", "test")
	setEnv(t, "DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL is required")
}

func TestLoadReadsEnvironment(t *testing.T) {
	setEnv(t, "GO_ENV", "test")
	setEnv(t, "DATABASE_URL", "postgresql://localhost:5432/digibistro_test")
	setEnv(t, "PORT", "9090")
	setEnv(t, "SESSION_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgresql://localhost:5432/digibistro_test", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "test-secret", cfg.SessionSecret)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	// Load stores the config for GetConfig
	assert.Equal(t, cfg, GetConfig())
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, "GO_ENV", "test")
	setEnv(t, "DATABASE_URL", "postgresql://localhost:5432/digibistro_test")
	setEnv(t, "PORT", "")
	setEnv(t, "SESSION_SECRET", "")
	setEnv(t, "AWS_REGION", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.NotEmpty(t, cfg.SessionSecret)
}

func TestValidateRejectsDevSecretInProduction(t *testing.T) {
	cfg := &Config{
		DatabaseURL:   "postgresql://localhost:5432/digibistro",
		GoEnv:         "production",
		SessionSecret: "digibistro-dev-secret",
	}
	assert.ErrorContains(t, cfg.Validate(), "SESSION_SECRET")

	cfg.SessionSecret = "a-real-secret"
	assert.NoError(t, cfg.Validate())
}
