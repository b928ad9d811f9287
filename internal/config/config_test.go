package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if !cfg.PrettyLog {
		t.Error("PrettyLog = false, want true by default")
	}
	if cfg.AccountFile != "" {
		t.Errorf("AccountFile = %q, want empty by default", cfg.AccountFile)
	}
	if cfg.ReplyTimeout != 5*time.Second {
		t.Errorf("ReplyTimeout = %v, want 5s", cfg.ReplyTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WARBLE_LOG_LEVEL", "debug")
	t.Setenv("WARBLE_PRETTY_LOG", "false")
	t.Setenv("WARBLE_ACCOUNT_FILE", "/etc/warble/accounts.yaml")
	t.Setenv("WARBLE_REPLY_TIMEOUT", "10s")

	cfg := Load()

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.PrettyLog {
		t.Error("PrettyLog = true, want false")
	}
	if cfg.AccountFile != "/etc/warble/accounts.yaml" {
		t.Errorf("AccountFile = %q", cfg.AccountFile)
	}
	if cfg.ReplyTimeout != 10*time.Second {
		t.Errorf("ReplyTimeout = %v, want 10s", cfg.ReplyTimeout)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("WARBLE_PRETTY_LOG", "not-a-bool")
	t.Setenv("WARBLE_REPLY_TIMEOUT", "soon")

	cfg := Load()

	if !cfg.PrettyLog {
		t.Error("invalid bool should fall back to the default")
	}
	if cfg.ReplyTimeout != 5*time.Second {
		t.Errorf("invalid duration should fall back to 5s, got %v", cfg.ReplyTimeout)
	}
}
