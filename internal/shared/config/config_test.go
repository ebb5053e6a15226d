package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"PORT", "ENV", "DATA_DIR", "RECEIVER_EMAIL", "MAIL_TRANSPORT", "SMTP_PORT", "CORS_ALLOW_ORIGINS", "RECORD_STORE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigin)
	assert.Equal(t, "local", cfg.ObjectStoreType)
	assert.Equal(t, "file", cfg.RecordStoreType)
	assert.Equal(t, filepath.Join(".", "resumes"), cfg.ResumesDir)
	assert.Equal(t, filepath.Join(".", "applications.json"), cfg.ApplicationsDB)
	assert.Equal(t, filepath.Join(".", "assets", "images"), cfg.AssetsDir)
	assert.Equal(t, "smtp", cfg.Mail.Transport)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.SMTPServer)
	assert.Equal(t, 587, cfg.Mail.SMTPPort)
	assert.True(t, cfg.Mail.SMTPUseTLS)
	assert.Equal(t, 15*time.Second, cfg.Mail.SMTPTimeout)
	assert.Empty(t, cfg.Mail.ReceiverEmail)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATA_DIR", "/srv/forms")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USE_TLS", "false")
	t.Setenv("SMTP_TIMEOUT", "3s")
	t.Setenv("MAIL_TRANSPORT", "SES")
	t.Setenv("RECORD_STORE", "pg")
	t.Setenv("RECEIVER_EMAIL", "  ops@example.com ")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ENV", "prod")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/srv/forms/resumes", cfg.ResumesDir)
	assert.Equal(t, "/srv/forms/templates", cfg.TemplatesDir)
	assert.Equal(t, 2525, cfg.Mail.SMTPPort)
	assert.False(t, cfg.Mail.SMTPUseTLS)
	assert.Equal(t, 3*time.Second, cfg.Mail.SMTPTimeout)
	assert.Equal(t, "ses", cfg.Mail.Transport)
	assert.Equal(t, "postgres", cfg.RecordStoreType)
	assert.Equal(t, "ops@example.com", cfg.Mail.ReceiverEmail)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigin)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("MAX_UPLOAD_BYTES", "lots")

	cfg := Load()

	assert.Equal(t, 587, cfg.Mail.SMTPPort)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COMPANY_NAME=\"Acme Careers\"\n# comment\n"), 0o644))
	t.Setenv("COMPANY_NAME", "")
	require.NoError(t, os.Unsetenv("COMPANY_NAME"))

	cfg := Load()

	assert.Equal(t, "Acme Careers", cfg.CompanyName)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores the previous one on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
