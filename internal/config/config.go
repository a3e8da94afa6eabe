package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host string
	Port string

	// Database settings
	DatabasePath string
	StoreTimeout time.Duration

	// Logging settings
	LogLevel  string
	LogFormat string

	// Cache settings. A zero CaseCacheTTL disables the case cache.
	CacheSize    int
	CaseCacheTTL time.Duration

	// API settings
	JudgeHeader      string
	ImportMaxRecords int
}

// CacheEnabled reports whether per-judge case lists should be cached.
func (c *Config) CacheEnabled() bool {
	return c.CaseCacheTTL > 0 && c.CacheSize > 0
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not an error if .env doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Host:         getEnv("HOST", "0.0.0.0"),
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./data/court_scheduler.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		JudgeHeader:  getEnv("JUDGE_HEADER", "X-Judge-Id"),
	}

	// Parse integer values
	var err error
	cfg.CacheSize, err = strconv.Atoi(getEnv("CACHE_SIZE", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CASE_CACHE_TTL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid CASE_CACHE_TTL: %w", err)
	}
	if cacheTTL < 0 {
		return nil, fmt.Errorf("invalid CASE_CACHE_TTL: must not be negative")
	}
	cfg.CaseCacheTTL = time.Duration(cacheTTL) * time.Second

	storeTimeout, err := strconv.Atoi(getEnv("STORE_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT: %w", err)
	}
	if storeTimeout <= 0 {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT: must be positive")
	}
	cfg.StoreTimeout = time.Duration(storeTimeout) * time.Second

	cfg.ImportMaxRecords, err = strconv.Atoi(getEnv("IMPORT_MAX_RECORDS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMPORT_MAX_RECORDS: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
