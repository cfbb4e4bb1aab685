package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/hub_test")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("R2_ACCOUNT_ID", "acct")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "bucket")
	t.Setenv("R2_PUBLIC_BASE_URL", "https://cdn.example.it/")
	t.Setenv("SMTP_HOST", "smtp.example.it")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASS", "mailerpass")
	t.Setenv("SMTP_FROM", "news@example.it")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "smtp.example.it", cfg.SMTPHost)
}

func TestLoadParsesOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.it, https://b.example.it")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, []string{"https://a.example.it", "https://b.example.it"}, cfg.CORSAllowedOrigins)
}

func TestLoadFailsFastOnMissingValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_HOST", "")
	t.Setenv("R2_BUCKET_NAME", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST")
	assert.Contains(t, err.Error(), "R2_BUCKET_NAME")
}

func TestLoadRejectsBadPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}
