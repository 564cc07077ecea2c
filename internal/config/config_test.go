package config_test

import (
	"testing"
	"time"

	"farmacoplus/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_BASE_URL", "DB_DSN", "LOG_FILE", "PAGE_SIZE", "FLASH_TTL", "SESSION_IDLE_TTL", "MAX_SESSIONS"} {
		t.Setenv(k, "")
	}
	cfg := config.Load()
	if cfg.Port != "8081" {
		t.Fatalf("port %q", cfg.Port)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api/api" {
		t.Fatalf("api base %q", cfg.APIBaseURL)
	}
	if cfg.DBDSN != ":memory:" || cfg.PageSize != 10 || cfg.FlashTTL != 3*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.SessionIdle != 30*time.Minute || cfg.MaxSessions != 1000 {
		t.Fatalf("unexpected session limits %+v", cfg)
	}
}

func TestLoadOverridesAndRejectsBadValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("API_BASE_URL", "http://api.internal:9000/api/api")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("FLASH_TTL", "-1s")
	t.Setenv("SESSION_IDLE_TTL", "5m")
	t.Setenv("MAX_SESSIONS", "0")
	cfg := config.Load()
	if cfg.Port != "8081" {
		t.Fatalf("invalid PORT should fall back, got %q", cfg.Port)
	}
	if cfg.APIBaseURL != "http://api.internal:9000/api/api" || cfg.PageSize != 25 {
		t.Fatalf("overrides not applied %+v", cfg)
	}
	if cfg.FlashTTL != 3*time.Second {
		t.Fatalf("negative FLASH_TTL should fall back, got %s", cfg.FlashTTL)
	}
	if cfg.SessionIdle != 5*time.Minute || cfg.MaxSessions != 1000 {
		t.Fatalf("session limits %+v", cfg)
	}
}
