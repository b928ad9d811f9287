package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	AccountFile string // path to the accounts.yaml file (optional, empty = account defaults disabled)

	ReplyTimeout time.Duration // how long to wait for an IQ reply before expiring it (default: 5s)
}

func Load() *Config {
	return &Config{
		// Logging
		LogLevel:  getenv("WARBLE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("WARBLE_PRETTY_LOG", true),

		// Account file
		AccountFile: getenv("WARBLE_ACCOUNT_FILE", ""),

		// Protocol
		ReplyTimeout: mustDuration("WARBLE_REPLY_TIMEOUT", 5*time.Second),
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
