package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	APIBaseURL string
	DBDSN      string
	LogFile    string
	PageSize   int
	FlashTTL   time.Duration

	// Per-browser workspaces: idle ones are evicted, and never more than
	// MaxSessions are kept.
	SessionIdle time.Duration
	MaxSessions int
}

func Load() Config {
	// A missing .env is the normal case outside development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[warn] .env not loaded: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid PORT value %q, defaulting to 8081", port)
		port = "8081"
	}
	base := os.Getenv("API_BASE_URL")
	if base == "" {
		base = "http://localhost:8080/api/api"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		// QA history is scratch state: in-memory, gone on exit.
		dsn = ":memory:"
	}
	logFile := os.Getenv("LOG_FILE")

	pageSize := 10
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
		} else {
			log.Printf("invalid PAGE_SIZE value %q, defaulting to %d", v, pageSize)
		}
	}
	ttl := 3 * time.Second
	if v := os.Getenv("FLASH_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		} else {
			log.Printf("invalid FLASH_TTL value %q, defaulting to %s", v, ttl)
		}
	}

	idle := 30 * time.Minute
	if v := os.Getenv("SESSION_IDLE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			idle = d
		} else {
			log.Printf("invalid SESSION_IDLE_TTL value %q, defaulting to %s", v, idle)
		}
	}
	maxSessions := 1000
	if v := os.Getenv("MAX_SESSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxSessions = n
		} else {
			log.Printf("invalid MAX_SESSIONS value %q, defaulting to %d", v, maxSessions)
		}
	}

	cfg := Config{
		Port: port, APIBaseURL: base, DBDSN: dsn, LogFile: logFile, PageSize: pageSize, FlashTTL: ttl,
		SessionIdle: idle, MaxSessions: maxSessions,
	}
	log.Printf("[config] PORT=%s API_BASE_URL=%s DB_DSN=%s LOG_FILE=%s PAGE_SIZE=%d FLASH_TTL=%s SESSION_IDLE_TTL=%s MAX_SESSIONS=%d",
		cfg.Port, cfg.APIBaseURL, cfg.DBDSN, cfg.LogFile, cfg.PageSize, cfg.FlashTTL, cfg.SessionIdle, cfg.MaxSessions)
	return cfg
}
