package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the API process reads from its environment.
type Config struct {
	Port        string
	DatabaseURL string

	DBMaxOpen     int
	DBMaxIdle     int
	DBMaxLifetime time.Duration

	LogLevel  string
	LogPretty bool
}

var ErrDatabaseURLRequired = errors.New("DATABASE_URL is required")

// Load reads an optional .env file and then the process environment.
// The returned bool reports whether a .env file was found.
func Load(files ...string) (*Config, bool, error) {
	envLoaded := godotenv.Load(files...) == nil

	cfg := &Config{
		Port:        getenv("PORT", "5000"),
		DatabaseURL: getenv("DATABASE_URL", ""),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
	if cfg.DatabaseURL == "" {
		return nil, envLoaded, ErrDatabaseURLRequired
	}

	var err error
	if cfg.DBMaxOpen, err = getint("DB_MAX_OPEN", 25); err != nil {
		return nil, envLoaded, err
	}
	if cfg.DBMaxIdle, err = getint("DB_MAX_IDLE", 25); err != nil {
		return nil, envLoaded, err
	}

	lifetime, err := getint("DB_MAX_LIFETIME", 300) // seconds
	if err != nil {
		return nil, envLoaded, err
	}
	cfg.DBMaxLifetime = time.Duration(lifetime) * time.Second

	if cfg.LogPretty, err = getbool("LOG_PRETTY", true); err != nil {
		return nil, envLoaded, err
	}

	return cfg, envLoaded, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// helper to read env with default
func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getint(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func getbool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean: %w", key, err)
	}
	return b, nil
}
