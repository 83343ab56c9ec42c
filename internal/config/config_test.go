package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost user=app dbname=app")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 10080, cfg.JWTExpiresMin)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendBaseURL)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "host=db user=app dbname=app")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("JWT_EXPIRES_MIN", "60")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("ID_ENCRYPT_KEY", "0123456789abcdef")

	cfg := Load()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, 60, cfg.JWTExpiresMin)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, "0123456789abcdef", cfg.IDEncryptKey)
}

func TestMustPanicsWhenMissing(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "s")

	assert.Panics(t, func() { Load() })
}
