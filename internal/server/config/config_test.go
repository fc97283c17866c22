package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if cfg.EndpointAddr != ":8080" {
		t.Fatalf("unexpected default address: %q", cfg.EndpointAddr)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("unexpected default access TTL: %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 30*24*time.Hour {
		t.Fatalf("unexpected default refresh TTL: %v", cfg.RefreshTokenTTL)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Fatalf("unexpected default store timeout: %v", cfg.StoreTimeout)
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		t.Fatalf("secrets must have dev defaults")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		t.Fatalf("access and refresh secrets must differ")
	}
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("DATABASE_DSN", "postgres://env/db")
	t.Setenv("ACCESS_TOKEN_SECRET", "envAccess")
	t.Setenv("REFRESH_TOKEN_SECRET", "envRefresh")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "30")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "7")
	t.Setenv("LOGIN_RATE_LIMIT", "3")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	if cfg.EndpointAddr != ":9090" {
		t.Fatalf("ADDRESS not applied: %q", cfg.EndpointAddr)
	}
	if cfg.DatabaseDSN != "postgres://env/db" {
		t.Fatalf("DATABASE_DSN not applied: %q", cfg.DatabaseDSN)
	}
	if cfg.AccessTokenSecret != "envAccess" || cfg.RefreshTokenSecret != "envRefresh" {
		t.Fatalf("secrets not applied")
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("access TTL not applied: %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("refresh TTL not applied: %v", cfg.RefreshTokenTTL)
	}
	if cfg.LoginRateLimit != 3 {
		t.Fatalf("rate limit not applied: %d", cfg.LoginRateLimit)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" {
		t.Fatalf("origins not applied: %v", cfg.AllowedOrigins)
	}
}

func TestParseEnv_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "not-a-number")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "-3")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("invalid minutes should keep default, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 30*24*time.Hour {
		t.Fatalf("negative days should keep default, got %v", cfg.RefreshTokenTTL)
	}
}
