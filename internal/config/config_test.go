package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.HTTP.Port != 5000 {
		t.Errorf("HTTP.Port = %d, want 5000", cfg.HTTP.Port)
	}
	if cfg.Security.TokenTTL != 24*time.Hour {
		t.Errorf("Security.TokenTTL = %v, want 24h", cfg.Security.TokenTTL)
	}
	if cfg.RateLimit.Window != 15*time.Minute || cfg.RateLimit.Max != 100 {
		t.Errorf("RateLimit = %d/%v, want 100/15m", cfg.RateLimit.Max, cfg.RateLimit.Window)
	}
	if cfg.RateLimit.AIWindow != time.Minute || cfg.RateLimit.AIMax != 10 {
		t.Errorf("AI RateLimit = %d/%v, want 10/1m", cfg.RateLimit.AIMax, cfg.RateLimit.AIWindow)
	}
	if cfg.Media.Retention != 24*time.Hour {
		t.Errorf("Media.Retention = %v, want 24h", cfg.Media.Retention)
	}
	if len(cfg.AllowCORSOrigins) != 1 || cfg.AllowCORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowCORSOrigins = %v", cfg.AllowCORSOrigins)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := strings.Join([]string{
		"environment: production",
		"http:",
		"  port: 8080",
		"postgres:",
		"  dsn: postgres://app:secret@db:5432/epsilon",
		"security:",
		"  jwtsecret: " + strings.Repeat("s", 32),
		"ratelimit:",
		"  max: 50",
		"allowcorsorigins: https://a.example.com,https://b.example.com",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	chdir(t, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("HTTP.Port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Postgres.DSN != "postgres://app:secret@db:5432/epsilon" {
		t.Errorf("Postgres.DSN = %q", cfg.Postgres.DSN)
	}
	if cfg.RateLimit.Max != 50 {
		t.Errorf("RateLimit.Max = %d, want 50", cfg.RateLimit.Max)
	}
	// Unset keys keep their defaults.
	if cfg.RateLimit.Window != 15*time.Minute {
		t.Errorf("RateLimit.Window = %v, want default 15m", cfg.RateLimit.Window)
	}
	if len(cfg.AllowCORSOrigins) != 2 {
		t.Errorf("AllowCORSOrigins = %v, want two origins", cfg.AllowCORSOrigins)
	}
}

func validConfig() *AppConfig {
	return &AppConfig{
		Postgres: PostgresConfig{DSN: "postgres://localhost/epsilon"},
		Security: SecurityConfig{JWTSecret: strings.Repeat("s", 32)},
		Provider: ProviderConfig{
			GeminiAPIKey:      "gk",
			HFAPIKey:          "hk",
			ElevenLabsAPIKey:  "ek",
			ElevenLabsVoiceID: "voice",
		},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Errorf("complete config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"missing dsn", func(c *AppConfig) { c.Postgres.DSN = "" }},
		{"missing jwt secret", func(c *AppConfig) { c.Security.JWTSecret = "" }},
		{"short jwt secret", func(c *AppConfig) { c.Security.JWTSecret = "short" }},
		{"missing gemini key", func(c *AppConfig) { c.Provider.GeminiAPIKey = "" }},
		{"missing hf key", func(c *AppConfig) { c.Provider.HFAPIKey = "" }},
		{"missing elevenlabs key", func(c *AppConfig) { c.Provider.ElevenLabsAPIKey = "" }},
		{"missing voice id", func(c *AppConfig) { c.Provider.ElevenLabsVoiceID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an incomplete config")
			}
		})
	}
}
