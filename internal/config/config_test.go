package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_USER", "editor")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "cinema")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "15")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "7")
	for _, k := range []string{"APP_ENV", "APP_PORT", "DB_PORT", "BCRYPT_COST", "LOG_LEVEL", "LOG_FORMAT", "RABBITMQ_ENABLED", "AUDIT_LOG_DIR"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, 15, cfg.AccessTTLMin)
	assert.Equal(t, 7, cfg.RefreshTTLDays)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.RabbitEnabled)
	assert.Equal(t, "logs", cfg.AuditLogDir)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_USER", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_InvalidInt(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_TTL_MIN")
}

func TestLoad_RabbitURLPrecedence(t *testing.T) {
	setRequired(t)
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://b/")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "amqp://b/", cfg.RabbitURL)

	t.Setenv("RABBITMQ_URL", "amqp://a/")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "amqp://a/", cfg.RabbitURL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(f, []byte("SEAT_EDITOR_DOTENV_PROBE=from-file\n"), 0o600))
	t.Setenv("SEAT_EDITOR_DOTENV_PROBE", "")
	os.Unsetenv("SEAT_EDITOR_DOTENV_PROBE")

	require.NoError(t, LoadDotEnv(f, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("SEAT_EDITOR_DOTENV_PROBE"))
}

func TestLoadSessionConfig(t *testing.T) {
	t.Setenv("SESSION_TTL", "10s")
	cfg := LoadSessionConfig()
	assert.Equal(t, time.Minute, cfg.TTL)
	assert.Equal(t, "editor", cfg.Prefix)
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_LIMIT", "0")
	t.Setenv("RATE_LIMIT_WINDOW", "garbage")
	t.Setenv("RATE_LIMIT_ENABLED", "off")
	cfg := LoadRateLimitConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
}

func TestRedisOptions(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_TLS", "1")
	opts := RedisOptions()
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.NotNil(t, opts.TLSConfig)

	t.Setenv("REDIS_HOST", "r")
	t.Setenv("REDIS_PORT", "1")
	assert.Equal(t, "r:1", RedisOptions().Addr)
}

func TestLoadResponseCacheConfig(t *testing.T) {
	t.Setenv("RESPONSE_CACHE_TTL", "")
	t.Setenv("RESPONSE_CACHE_MAX_BODY", "-5")
	cfg := LoadResponseCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.TTL)
	assert.Equal(t, 0, cfg.MaxBodyBytes)
	assert.Equal(t, "resp", cfg.Prefix)
}
