package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Values come from an optional
// YAML file, with environment variables taking precedence over both the file
// and the built-in defaults.
type Config struct {
	Port        string `yaml:"port" validate:"required"`
	DBPath      string `yaml:"db_path" validate:"required"`
	StationsCSV string `yaml:"stations_csv"`
	TripsCSV    string `yaml:"trips_csv"`
	JWTSecret   string `yaml:"jwt_secret" validate:"required"`

	// WindowHalfWidth is the traffic window half-width in minutes. 60 gives
	// the one-hour rolling view; the wrap-around arithmetic holds for any
	// value whose full window still fits in a day.
	WindowHalfWidth int `yaml:"window_half_width" validate:"min=0,max=719"`

	RateLimit       int    `yaml:"rate_limit" validate:"min=1"`
	RateLimitWindow string `yaml:"rate_limit_window"`
	LogLevel        string `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		Port:            ":8080",
		DBPath:          "./data/bikeflow.db",
		StationsCSV:     "./data/stations.csv",
		TripsCSV:        "./data/trips.csv",
		JWTSecret:       "change-me-in-production",
		WindowHalfWidth: 60,
		RateLimit:       120,
		RateLimitWindow: "1m",
		LogLevel:        "info",
	}
}

// Load reads the config file at path (skipped when empty or missing), applies
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STATIONS_CSV"); v != "" {
		cfg.StationsCSV = v
	}
	if v := os.Getenv("TRIPS_CSV"); v != "" {
		cfg.TripsCSV = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("WINDOW_HALF_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WindowHalfWidth = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
