package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Store    StoreConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Purge    PurgeConfig
	App      AppConfig
}

// StoreConfig describes how the sync client reaches the project store.
type StoreConfig struct {
	URL        string
	Timeout    time.Duration
	GuardStale bool
}

type ServerConfig struct {
	Port           string
	Backend        string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type DatabaseConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PurgeConfig struct {
	Schedule  string
	Retention time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Store: StoreConfig{
			URL:        getEnv("STORE_URL", "http://localhost:5001/api/projects"),
			Timeout:    getEnvAsDuration("STORE_TIMEOUT", 10*time.Second),
			GuardStale: getEnvAsBool("STORE_GUARD_STALE", true),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "5001"),
			Backend:        strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
			CORSOrigins:    getEnvAsList("CORS_ORIGINS", []string{"*"}),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 20),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Purge: PurgeConfig{
			Schedule:  getEnv("PURGE_SCHEDULE", "0 0 0 * * *"),
			Retention: getEnvAsDuration("PURGE_RETENTION", 7*24*time.Hour),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Store.URL == "" {
		return fmt.Errorf("STORE_URL is required")
	}
	if c.Store.Timeout < 0 {
		return fmt.Errorf("STORE_TIMEOUT must not be negative")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Server.Backend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Server.Backend)
	}

	if c.Purge.Retention < 0 {
		return fmt.Errorf("PURGE_RETENTION must not be negative")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
