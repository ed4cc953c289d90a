package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileFullConfig(t *testing.T) {
	path := writeConfig(t, `
rabbitmq:
  host: rabbit.internal
  port: 5673
  user: estimates
  password: secret

redis:
  enabled: true
  host: cache.internal
  port: 6380
  db: 2
  cache_ttl_hours: 48

geocoding:
  base_url: https://geo.example.com/api
  api_key: geo-key
  reject_types: subpremise, premise
  timeout_seconds: 5

estimates:
  base_url: https://rides.example.com/v1/estimates
  server_token: ride-token
  timeout_seconds: 7

sink:
  driver: file
  path: /var/log/estimates/output.log
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "rabbit.internal", cfg.RabbitMQ.Host)
	assert.Equal(t, 5673, cfg.RabbitMQ.Port)

	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 48*time.Hour, cfg.CacheTTL())

	assert.Equal(t, "https://geo.example.com/api", cfg.Geocoding.BaseURL)
	assert.Equal(t, []string{"subpremise", "premise"}, cfg.Geocoding.RejectTypes)
	assert.Equal(t, 5*time.Second, cfg.GeocodingTimeout())

	assert.Equal(t, "ride-token", cfg.Estimates.ServerToken)
	assert.Equal(t, 7*time.Second, cfg.EstimatesTimeout())

	assert.Equal(t, SinkDriverFile, cfg.Sink.Driver)
	assert.Equal(t, "/var/log/estimates/output.log", cfg.Sink.Path)
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
rabbitmq:
  user: guest
  password: guest
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.RabbitMQ.Host)
	assert.Equal(t, 5672, cfg.RabbitMQ.Port)
	assert.Equal(t, 15*time.Hour, cfg.CacheTTL())
	assert.Equal(t, "https://maps.googleapis.com/maps/api/geocode", cfg.Geocoding.BaseURL)
	assert.Equal(t, []string{"subpremise"}, cfg.Geocoding.RejectTypes)
	assert.Equal(t, "https://api.uber.com/v1/estimates", cfg.Estimates.BaseURL)
	assert.Equal(t, SinkDriverFile, cfg.Sink.Driver)
	assert.Equal(t, "data/output.log", cfg.Sink.Path)
}

func TestLoadFromFileRequiresBrokerCredentials(t *testing.T) {
	path := writeConfig(t, `
rabbitmq:
  host: localhost
`)

	_, err := LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq.user is required")
	assert.Contains(t, err.Error(), "rabbitmq.password is required")
}

func TestLoadFromFilePostgresSinkNeedsDatabaseFields(t *testing.T) {
	path := writeConfig(t, `
rabbitmq:
  user: guest
  password: guest

sink:
  driver: postgres
`)

	_, err := LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.user is required")
	assert.Contains(t, err.Error(), "database.name is required")
}

func TestLoadFromFileRejectsUnknownSinkDriver(t *testing.T) {
	path := writeConfig(t, `
rabbitmq:
  user: guest
  password: guest

sink:
  driver: s3
`)

	_, err := LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink.driver")
}

func TestLoadFromFileRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
rabbitmq:
  user: guest
  password: guest
  vhost: /
`)

	_, err := LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key in rabbitmq")
}

func TestLoadFromFileStripsComments(t *testing.T) {
	path := writeConfig(t, `
# broker settings
rabbitmq:
  user: guest # local default
  password: guest
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "guest", cfg.RabbitMQ.User)
}

func TestLoadFromFileMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
