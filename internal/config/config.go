// README: Config loader with env defaults for HTTP, DB, Redis, and rate-table settings.
package config

import (
	"os"
	"strconv"
)

type RatesConfig struct {
	// CacheTTLSeconds bounds how long a cached rate table is served before
	// the store is consulted again.
	CacheTTLSeconds int
	// LegacyFile optionally points at an old-format rate document loaded at
	// startup when no database is configured.
	LegacyFile string
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN empty means no database: the built-in rate table is used.
		DSN string
	}
	Redis struct {
		// Addr empty disables the rate-table cache.
		Addr string
	}
	Rates RatesConfig
	AI    struct {
		// GeminiKey empty disables the settlement-summary endpoint.
		GeminiKey string
	}
	Maps struct {
		// APIKey empty disables the distance-suggestion endpoint.
		APIKey string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("DESP_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("DESP_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("DESP_REDIS_ADDR", "")
	cfg.Rates.CacheTTLSeconds = envOrDefaultInt("DESP_RATES_TTL", 3600)
	cfg.Rates.LegacyFile = envOrDefault("DESP_RATES_FILE", "")
	cfg.AI.GeminiKey = envOrDefault("GEMINI_API_KEY", "")
	cfg.Maps.APIKey = envOrDefault("MAPS_API_KEY", "")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
