package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_Defaults(t *testing.T) {
	t.Setenv("ADMIN_KEY", "a-sufficiently-long-admin-key")

	m, err := NewManager()
	require.NoError(t, err)

	server := m.GetEffectiveServerConfig()
	assert.Equal(t, 3001, server.Port)
	assert.Equal(t, "0.0.0.0", server.Host)
	assert.True(t, m.IsMaster())

	assert.True(t, m.GetCORSConfig().Enabled)
	assert.Equal(t, []string{"*"}, m.GetCORSConfig().AllowedOrigins)
	assert.Equal(t, 100, m.GetPerformanceConfig().MaxConcurrentRequests)
	assert.Equal(t, "./data/transhub.db", m.GetDatabaseConfig().DSN)
	assert.Empty(t, m.GetRedisDSN())
}

func TestNewManager_EnvOverrides(t *testing.T) {
	t.Setenv("ADMIN_KEY", "a-sufficiently-long-admin-key")
	t.Setenv("PORT", "8080")
	t.Setenv("IS_SLAVE", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("REDIS_DSN", "redis://localhost:6379/0")

	m, err := NewManager()
	require.NoError(t, err)
	assert.Equal(t, 8080, m.GetEffectiveServerConfig().Port)
	assert.False(t, m.IsMaster())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, m.GetCORSConfig().AllowedOrigins)
	assert.Equal(t, "redis://localhost:6379/0", m.GetRedisDSN())
}

func TestNewManager_Validation(t *testing.T) {
	t.Setenv("ADMIN_KEY", "")
	_, err := NewManager()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_KEY")

	t.Setenv("ADMIN_KEY", "too-short")
	_, err = NewManager()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "16 characters")

	t.Setenv("ADMIN_KEY", "a-sufficiently-long-admin-key")
	t.Setenv("PORT", "99999")
	_, err = NewManager()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}
