package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	if cfg.SMTPPort != "587" {
		t.Errorf("smtp port = %q, want %q", cfg.SMTPPort, "587")
	}
	if cfg.FrontendURL == "" {
		t.Error("expected default frontend URL")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("RENTROLL_DB", "/tmp/override.db")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("RENTROLL_DEV_MODE", "true")

	cfg := FromEnv()

	if cfg.DatabasePath != "/tmp/override.db" {
		t.Errorf("database path = %q, want %q", cfg.DatabasePath, "/tmp/override.db")
	}
	if cfg.SMTPPort != "465" {
		t.Errorf("smtp port = %q, want %q", cfg.SMTPPort, "465")
	}
	if !cfg.DevMode {
		t.Error("expected dev mode")
	}
}

func TestDatabaseURLFallback(t *testing.T) {
	t.Setenv("RENTROLL_DB", "")
	t.Setenv("DATABASE_URL", "/tmp/fallback.db")

	cfg := FromEnv()
	if cfg.DatabasePath != "/tmp/fallback.db" {
		t.Errorf("database path = %q, want %q", cfg.DatabasePath, "/tmp/fallback.db")
	}
}
