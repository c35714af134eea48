package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultStreamlineURL  = "https://web.streamlinevrs.com/api/json"
	defaultSyncYear       = "2026"
	defaultSyncWorkers    = "1"
	defaultLookupBatch    = "100"
	defaultRequestTimeout = "30s"
	defaultPort           = "8080"
)

type Config struct {
	DatabaseURL string
	Port        string

	StreamlineAPIURL      string
	StreamlineTokenKey    string
	StreamlineTokenSecret string
	StreamlineTimeout     time.Duration

	SyncYear    int
	SyncWorkers int
	LookupBatch int
}

func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	cfg.Port = getEnv("PORT", defaultPort)

	cfg.StreamlineAPIURL = getEnv("STREAMLINE_API_URL", defaultStreamlineURL)
	cfg.StreamlineTokenKey = strings.TrimSpace(os.Getenv("STREAMLINE_TOKEN_KEY"))
	cfg.StreamlineTokenSecret = strings.TrimSpace(os.Getenv("STREAMLINE_TOKEN_SECRET"))

	var err error
	cfg.StreamlineTimeout, err = parseDurationEnv("STREAMLINE_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	cfg.SyncYear, err = parseIntEnv("SYNC_YEAR", defaultSyncYear)
	if err != nil {
		return nil, err
	}
	cfg.SyncWorkers, err = parseIntEnv("SYNC_WORKERS", defaultSyncWorkers)
	if err != nil {
		return nil, err
	}
	if cfg.SyncWorkers < 1 {
		cfg.SyncWorkers = 1
	}
	cfg.LookupBatch, err = parseIntEnv("CALENDAR_LOOKUP_BATCH", defaultLookupBatch)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// RequireStreamline reports an error when the PMS credentials are missing.
// The API binary can run without them; the sync binary cannot.
func (c *Config) RequireStreamline() error {
	if c.StreamlineTokenKey == "" || c.StreamlineTokenSecret == "" {
		return fmt.Errorf("STREAMLINE_TOKEN_KEY and STREAMLINE_TOKEN_SECRET are required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseIntEnv(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return v, nil
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return v, nil
}
