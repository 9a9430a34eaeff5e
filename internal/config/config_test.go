package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PGHOST", "db")
	t.Setenv("PGUSER", "u")
	t.Setenv("PGPASSWORD", "p")
	t.Setenv("PGDATABASE", "ads")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://u:p@db:5432/ads?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxPictureBytes)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.AutoMigrate)
	assert.True(t, cfg.IsProduction())
	assert.Empty(t, cfg.LoginURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://x@y/z")
	t.Setenv("STORAGE", "MEMORY")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("AUTH_LOGIN_URL", "/login")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://x@y/z", cfg.DatabaseURL)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "/login", cfg.LoginURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown storage", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORAGE", "redis")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("bad picture limit", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("MAX_PICTURE_BYTES", "-1")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
