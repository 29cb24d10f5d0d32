package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// StoreBackend selects the storage implementation at startup.
type StoreBackend string

const (
	StorePostgres StoreBackend = "postgres"
	StoreMemory   StoreBackend = "memory"
)

// Config holds all server configuration, loaded once at startup.
type Config struct {
	Env         string
	Port        string
	JWTSecret   string
	TokenExpiry time.Duration

	// Store selects the storage backend. With StorePostgres the server
	// still falls back to the memory store when the database cannot be
	// reached, matching the local-dev behavior the frontend expects.
	Store StoreBackend

	Database DatabaseConfig

	// RedisAddr enables the recent-posts cache when non-empty.
	RedisAddr     string
	RedisPassword string

	// NATSURL enables event publishing when non-empty.
	NATSURL string

	// BotReplyDelay paces scripted chat replies on the signaling server.
	BotReplyDelay time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Env:           getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "4000"),
		JWTSecret:     getEnv("JWT_SECRET", "devsecret"),
		TokenExpiry:   getEnvAsDuration("TOKEN_EXPIRY", 7*24*time.Hour),
		Store:         StoreBackend(getEnv("STORE", string(StorePostgres))),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		NATSURL:       getEnv("NATS_URL", ""),
		BotReplyDelay: getEnvAsDuration("BOT_REPLY_DELAY", 200*time.Millisecond),
	}

	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("invalid STORE %q: must be %q or %q", cfg.Store, StorePostgres, StoreMemory)
	}

	dbCfg, err := LoadDatabaseConfig("")
	if err != nil {
		return nil, err
	}
	cfg.Database = *dbCfg

	return cfg, nil
}

// Production reports whether the server runs in production mode; the dev
// seed/clear endpoints are disabled there.
func (c *Config) Production() bool { return c.Env == "production" }

// LoadDatabaseConfig loads database configuration from environment variables
func LoadDatabaseConfig(prefix string) (*DatabaseConfig, error) {
	cfg := &DatabaseConfig{
		Host:         getEnv(prefix+"DB_HOST", "127.0.0.1"),
		User:         getEnv(prefix+"DB_USER", "postgres"),
		Password:     getEnv(prefix+"DB_PASSWORD", "postgres"),
		DBName:       getEnv(prefix+"DB_NAME", "uniun"),
		SSLMode:      getEnv(prefix+"DB_SSLMODE", "disable"),
		MaxOpenConns: getEnvAsInt(prefix+"DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns: getEnvAsInt(prefix+"DB_MAX_IDLE_CONNS", 5),
		MaxLifetime:  getEnvAsDuration(prefix+"DB_MAX_LIFETIME", 5*time.Minute),
	}

	var err error
	cfg.Port, err = strconv.Atoi(getEnv(prefix+"DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid database port: %w", err)
	}

	if cfg.DBName == "" {
		return nil, fmt.Errorf("database name is required (set %sDB_NAME)", prefix)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
