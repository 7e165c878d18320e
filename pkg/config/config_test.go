package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.App.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.App.Port)
	}
	if cfg.App.PortAttempts != 5 {
		t.Fatalf("expected 5 bind attempts, got %d", cfg.App.PortAttempts)
	}
	if cfg.JWT.ExpirationDays != 7 {
		t.Fatalf("expected 7 day token expiry, got %d", cfg.JWT.ExpirationDays)
	}
	if got := cfg.JWT.TokenTTL(); got != 7*24*time.Hour {
		t.Fatalf("unexpected token ttl %v", got)
	}
	if cfg.SMTP.MaxAttempts != 3 {
		t.Fatalf("expected 3 smtp attempts, got %d", cfg.SMTP.MaxAttempts)
	}
	if cfg.SMTP.RetryBaseDelay != 2*time.Second {
		t.Fatalf("unexpected retry base delay %v", cfg.SMTP.RetryBaseDelay)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without an endpoint")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestSMTPSenderFallsBackToUsername(t *testing.T) {
	cfg := SMTPConfig{Username: "orders@example.com"}
	if got := cfg.Sender(); got != "orders@example.com" {
		t.Fatalf("unexpected sender %q", got)
	}
	cfg.From = "noreply@example.com"
	if got := cfg.Sender(); got != "noreply@example.com" {
		t.Fatalf("unexpected sender %q", got)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvMongoURI, "mongodb://localhost:27017")
	t.Setenv(EnvJWTSecret, "secret")
}
