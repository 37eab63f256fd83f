package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr)
	assert.Equal(t, "127.0.0.1", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "prefer", cfg.DB.SSLMode)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "accounts")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SERVER_ADDR", ":9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.example.com", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "accounts", cfg.DB.Name)
	assert.Equal(t, "svc", cfg.DB.User)
	assert.Equal(t, "secret", cfg.DB.Password)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Server.Addr)
}

func TestMissingDBVars(t *testing.T) {
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")

	assert.Equal(t, []string{"DB_NAME", "DB_USER", "DB_PASSWORD"}, MissingDBVars())
}

func TestMissingDBVars_AllSet(t *testing.T) {
	t.Setenv("DB_HOST", "h")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "n")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")

	assert.Empty(t, MissingDBVars())
}
