package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":3001", cfg.AppAddr)
	assert.Equal(t, "15m0s", cfg.JWTAccessTTL.String())
	assert.Equal(t, "168h0m0s", cfg.JWTRefreshTTL.String())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsSharedSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "same-secret")
	t.Setenv("JWT_REFRESH_SECRET", "same-secret")

	_, err := LoadConfig()
	assert.Error(t, err)
}
