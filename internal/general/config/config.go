package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	SinkDriverFile     = "file"
	SinkDriverPostgres = "postgres"
)

type Config struct {
	RabbitMQ struct {
		Host     string
		Port     int
		User     string
		Password string
	}
	Redis struct {
		Enabled  bool
		Host     string
		Port     int
		Password string
		DB       int
		TTLHours int // geocode cache TTL
	}
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string // YAML key: "database"
	}
	Geocoding struct {
		BaseURL        string
		APIKey         string
		RejectTypes    []string // result-type classifications rejected as route endpoints
		TimeoutSeconds int
	}
	Estimates struct {
		BaseURL        string
		ServerToken    string
		TimeoutSeconds int
	}
	Sink struct {
		Driver string // "file" or "postgres"
		Path   string // file driver only
	}
}

// LoadFromFile loads config from a YAML file to a Config struct, applies defaults, and validates required fields.
func LoadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := parseYAML(file, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// CacheTTL returns the geocode cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.TTLHours) * time.Hour
}

// GeocodingTimeout returns the per-call deadline for geocoding requests.
func (c *Config) GeocodingTimeout() time.Duration {
	return time.Duration(c.Geocoding.TimeoutSeconds) * time.Second
}

// EstimatesTimeout returns the per-call deadline for estimate requests.
func (c *Config) EstimatesTimeout() time.Duration {
	return time.Duration(c.Estimates.TimeoutSeconds) * time.Second
}

// applyDefaults sets safe defaults for some fields.
func applyDefaults(cfg *Config) {
	// RabbitMQ
	if cfg.RabbitMQ.Host == "" {
		cfg.RabbitMQ.Host = "localhost"
	}
	if cfg.RabbitMQ.Port == 0 {
		cfg.RabbitMQ.Port = 5672
	}

	// Redis
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.TTLHours == 0 {
		cfg.Redis.TTLHours = 15
	}

	// Database
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}

	// Geocoding
	if cfg.Geocoding.BaseURL == "" {
		cfg.Geocoding.BaseURL = "https://maps.googleapis.com/maps/api/geocode"
	}
	if len(cfg.Geocoding.RejectTypes) == 0 {
		cfg.Geocoding.RejectTypes = []string{"subpremise"}
	}
	if cfg.Geocoding.TimeoutSeconds == 0 {
		cfg.Geocoding.TimeoutSeconds = 10
	}

	// Estimates
	if cfg.Estimates.BaseURL == "" {
		cfg.Estimates.BaseURL = "https://api.uber.com/v1/estimates"
	}
	if cfg.Estimates.TimeoutSeconds == 0 {
		cfg.Estimates.TimeoutSeconds = 10
	}

	// Sink
	if cfg.Sink.Driver == "" {
		cfg.Sink.Driver = SinkDriverFile
	}
	if cfg.Sink.Path == "" {
		cfg.Sink.Path = "data/output.log"
	}
}

// validate checks required fields and basic ranges.
func (c *Config) validate() error {
	var problems []string

	// RabbitMQ
	if c.RabbitMQ.Port <= 0 || c.RabbitMQ.Port > 65535 {
		problems = append(problems, "rabbitmq.port must be in 1..65535")
	}
	if c.RabbitMQ.User == "" {
		problems = append(problems, "rabbitmq.user is required")
	}
	if c.RabbitMQ.Password == "" {
		problems = append(problems, "rabbitmq.password is required")
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
			problems = append(problems, "redis.port must be in 1..65535")
		}
		if c.Redis.TTLHours < 0 {
			problems = append(problems, "redis.cache_ttl_hours cannot be negative")
		}
	}

	// Geocoding / Estimates
	if c.Geocoding.TimeoutSeconds <= 0 {
		problems = append(problems, "geocoding.timeout_seconds must be > 0")
	}
	if c.Estimates.TimeoutSeconds <= 0 {
		problems = append(problems, "estimates.timeout_seconds must be > 0")
	}

	// Sink
	switch c.Sink.Driver {
	case SinkDriverFile:
		if c.Sink.Path == "" {
			problems = append(problems, "sink.path is required for the file driver")
		}
	case SinkDriverPostgres:
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			problems = append(problems, "database.port must be in 1..65535")
		}
		if c.Database.User == "" {
			problems = append(problems, "database.user is required for the postgres sink")
		}
		if c.Database.Password == "" {
			problems = append(problems, "database.password is required for the postgres sink")
		}
		if c.Database.Name == "" {
			problems = append(problems, "database.name is required for the postgres sink")
		}
	default:
		problems = append(problems, fmt.Sprintf("sink.driver must be %q or %q", SinkDriverFile, SinkDriverPostgres))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
