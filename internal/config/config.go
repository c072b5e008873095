package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type RedisConfig struct {
	Addr     string
	Password string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type ServerConfig struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string
	// CookieDomain scopes the auth cookie; empty means host-only.
	CookieDomain string
	Redis        RedisConfig
	LLM          LLMConfig
}

// ReminderConfig carries everything the batch job needs. The window bounds
// and the external scheduler's cadence are validated together: consecutive
// invocations must tile the timeline so no due time can fall between
// windows.
type ReminderConfig struct {
	DatabaseDSN string
	SMTP        SMTPConfig
	AppURL      string

	// Cadence is how often the external scheduler invokes the job.
	Cadence time.Duration
	// WindowLead is the lower offset: tasks due sooner than now+WindowLead
	// are considered already handled by an earlier invocation.
	WindowLead time.Duration
	// WindowSpan is the width of the window starting at now+WindowLead.
	WindowSpan time.Duration
	// SendDelay is the pause between consecutive sends, to stay under the
	// mail provider's rate limits.
	SendDelay time.Duration
}

func LoadServer() (ServerConfig, error) {
	cfg := ServerConfig{
		Port:         getenv("PORT", "3000"),
		DatabaseDSN:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CookieDomain: os.Getenv("DOMAIN"),
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		LLM: LLMConfig{
			APIKey:  os.Getenv("GROQ_API_KEY"),
			BaseURL: getenv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:   getenv("GROQ_MODEL", "llama-3.1-8b-instant"),
		},
	}

	if cfg.DatabaseDSN == "" {
		return ServerConfig{}, fmt.Errorf("DATABASE_URL is not set")
	}

	if cfg.JWTSecret == "" {
		return ServerConfig{}, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}

func LoadReminder() (ReminderConfig, error) {
	smtpPort, err := strconv.Atoi(getenv("SMTP_PORT", "587"))

	if err != nil {
		return ReminderConfig{}, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cfg := ReminderConfig{
		DatabaseDSN: os.Getenv("DATABASE_URL"),
		SMTP: SMTPConfig{
			Host:     getenv("SMTP_HOST", "smtp.gmail.com"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     getenv("SMTP_FROM", os.Getenv("SMTP_USER")),
		},
		AppURL: getenv("APP_URL", "https://mindsender.app"),
	}

	if cfg.Cadence, err = getduration("REMINDER_CADENCE", time.Hour); err != nil {
		return ReminderConfig{}, err
	}

	if cfg.WindowLead, err = getduration("REMINDER_WINDOW_LEAD", 2*time.Hour); err != nil {
		return ReminderConfig{}, err
	}

	if cfg.WindowSpan, err = getduration("REMINDER_WINDOW_SPAN", 90*time.Minute); err != nil {
		return ReminderConfig{}, err
	}

	if cfg.SendDelay, err = getduration("REMINDER_SEND_DELAY", time.Second); err != nil {
		return ReminderConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return ReminderConfig{}, err
	}

	return cfg, nil
}

func (c ReminderConfig) Validate() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	if c.SMTP.Username == "" || c.SMTP.Password == "" {
		return fmt.Errorf("SMTP_USER and SMTP_PASS must be set")
	}

	if c.Cadence <= 0 || c.WindowLead <= 0 || c.WindowSpan <= 0 {
		return fmt.Errorf("reminder cadence, window lead and window span must be positive")
	}

	// A window narrower than the invocation cadence leaves gaps: a task due
	// between two consecutive windows would never be reminded.
	if c.WindowSpan < c.Cadence {
		return fmt.Errorf("reminder window span (%s) must be at least the scheduler cadence (%s)", c.WindowSpan, c.Cadence)
	}

	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)

	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)

	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return d, nil
}
