// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	defaultAddress    = ":8080"
	defaultTTLSeconds = 10
)

type Config struct {
	Address        string `validate:"required"`
	AllowedOrigins []string

	// TTLSeconds is how long a published snapshot stays servable.
	// Fixed for the process lifetime.
	TTLSeconds int `validate:"min=1"`

	LogLevel  string
	LogFormat string
}

var validate = validator.New()

func Load() (*Config, error) {
	_ = godotenv.Load()

	// Logs
	logLevel := getEnv("LOG_LEVEL", "info")
	logFormat := getEnv("LOG_FORMAT", "text")

	// Server HTTP Address
	addr := getEnv("SYSGLANCE_ADDR", defaultAddress)

	// Allowed Origins
	var origins []string
	rawOrigins := os.Getenv("ALLOWED_ORIGINS")
	if rawOrigins != "" {
		parts := strings.SplitSeq(rawOrigins, ",")
		for o := range parts {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	// Snapshot TTL
	ttlSeconds := defaultTTLSeconds
	if raw := os.Getenv("SYSGLANCE_TTL_SECONDS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			ttlSeconds = parsed
		}
	}

	cfg := &Config{
		LogLevel:  logLevel,
		LogFormat: logFormat,

		Address:        addr,
		AllowedOrigins: origins,
		TTLSeconds:     ttlSeconds,
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
