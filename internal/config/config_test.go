package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setReminderEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/mindsender")
	t.Setenv("SMTP_USER", "reminders@example.com")
	t.Setenv("SMTP_PASS", "hunter2")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_FROM", "")
	t.Setenv("REMINDER_CADENCE", "")
	t.Setenv("REMINDER_WINDOW_LEAD", "")
	t.Setenv("REMINDER_WINDOW_SPAN", "")
	t.Setenv("REMINDER_SEND_DELAY", "")
}

func TestLoadReminderDefaults(t *testing.T) {
	setReminderEnv(t)

	cfg, err := LoadReminder()

	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Cadence)
	assert.Equal(t, 2*time.Hour, cfg.WindowLead)
	assert.Equal(t, 90*time.Minute, cfg.WindowSpan)
	assert.Equal(t, time.Second, cfg.SendDelay)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "reminders@example.com", cfg.SMTP.From)
}

func TestLoadReminderRejectsNarrowWindow(t *testing.T) {
	setReminderEnv(t)
	t.Setenv("REMINDER_CADENCE", "1h")
	t.Setenv("REMINDER_WINDOW_SPAN", "30m")

	_, err := LoadReminder()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "window span")
}

func TestLoadReminderRequiresSMTPCredentials(t *testing.T) {
	setReminderEnv(t)
	t.Setenv("SMTP_PASS", "")

	_, err := LoadReminder()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_USER and SMTP_PASS")
}

func TestLoadReminderRejectsMalformedDuration(t *testing.T) {
	setReminderEnv(t)
	t.Setenv("REMINDER_WINDOW_LEAD", "two hours")

	_, err := LoadReminder()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "REMINDER_WINDOW_LEAD")
}

func TestValidateRejectsNonPositiveDurations(t *testing.T) {
	cfg := ReminderConfig{
		DatabaseDSN: "postgres://localhost/mindsender",
		SMTP:        SMTPConfig{Username: "u", Password: "p"},
		Cadence:     time.Hour,
		WindowLead:  -time.Hour,
		WindowSpan:  time.Hour,
	}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestLoadServer(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/mindsender")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DOMAIN", "mindsender.app")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("GROQ_BASE_URL", "")
	t.Setenv("GROQ_MODEL", "")

	cfg, err := LoadServer()

	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "mindsender.app", cfg.CookieDomain)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
}

func TestLoadServerRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := LoadServer()

	assert.EqualError(t, err, "DATABASE_URL is not set")
}

func TestLoadServerRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/mindsender")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadServer()

	assert.EqualError(t, err, "JWT_SECRET is not set")
}
