package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWT.Algorithm != "HS256" {
		t.Fatalf("unexpected algorithm: %s", cfg.JWT.Algorithm)
	}
	if cfg.JWT.TTL() != 24*time.Hour {
		t.Fatalf("unexpected token ttl: %s", cfg.JWT.TTL())
	}
	if cfg.Login.MaxAttempts != 5 || cfg.Login.Window() != 15*time.Minute {
		t.Fatalf("unexpected login throttle config: %+v", cfg.Login)
	}
	if cfg.Mongo.Database != "commerce" {
		t.Fatalf("unexpected mongo database: %s", cfg.Mongo.Database)
	}
}

func TestLoad_SecretRequired(t *testing.T) {
	// t.Setenv registers the restore; the variable itself must be absent.
	t.Setenv("JWT_SECRET", "placeholder")
	os.Unsetenv("JWT_SECRET")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is unset")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("TOKEN_TTL_MINUTES", "60")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Port != "9090" || cfg.JWT.Algorithm != "HS512" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.JWT.TTL() != time.Hour {
		t.Fatalf("unexpected ttl: %s", cfg.JWT.TTL())
	}
	if cfg.Login.MaxAttempts != 3 {
		t.Fatalf("unexpected max attempts: %d", cfg.Login.MaxAttempts)
	}
}
