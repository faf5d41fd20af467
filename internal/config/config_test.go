package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 3001 {
		t.Errorf("port: expected 3001, got %d", cfg.Port)
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Errorf("token TTL: expected 168h, got %v", cfg.TokenTTL)
	}
	if cfg.DBPath == "" {
		t.Error("expected default DB path")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("DB_PATH", "/tmp/other.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 || cfg.TokenTTL != 24*time.Hour || cfg.DBPath != "/tmp/other.db" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when JWT_SECRET is unset")
	}
}
