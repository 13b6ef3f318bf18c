package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"shareit/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Backup     BackupConfig     `yaml:"backup"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	API        APIConfig        `yaml:"api"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Pagination PaginationConfig `yaml:"pagination"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Schedule      string `yaml:"schedule"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type APIConfig struct {
	HTTP      APIHTTPConfig      `yaml:"http"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIHTTPConfig struct {
	Port int `yaml:"port"`
}

// APIRateLimitConfig bounds the number of calls a single user may make per window.
// Requests without a user header are not counted.
type APIRateLimitConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type GatewayConfig struct {
	Port      int                    `yaml:"port"`
	ServerURL string                 `yaml:"server_url"`
	Timeout   time.Duration          `yaml:"timeout"`
	RateLimit GatewayRateLimitConfig `yaml:"rate_limit"`
	Retry     RetryConfig            `yaml:"retry"`
}

type GatewayRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type RetryConfig struct {
	MaxRetries    int           `yaml:"max_retries"`
	InitialDelay  time.Duration `yaml:"initial_delay"`
	MaxDelay      time.Duration `yaml:"max_delay"`
	BackoffFactor float64       `yaml:"backoff_factor"`
}

type PaginationConfig struct {
	DefaultSize int `yaml:"default_size"`
	MaxSize     int `yaml:"max_size"`
}

// Load reads the YAML file at configPath, expanding ${VAR} references from the
// environment and an optional .env file.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database path is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if c.API.RateLimit.Enabled && c.API.RateLimit.Requests <= 0 {
		return errors.New("api.rate_limit.requests must be positive")
	}

	if c.Pagination.MaxSize < c.Pagination.DefaultSize {
		return fmt.Errorf("pagination.max_size %d is below default_size %d", c.Pagination.MaxSize, c.Pagination.DefaultSize)
	}

	if c.Backup.Enabled && c.Database.Driver != DriverSQLite {
		return errors.New("backup requires the sqlite driver")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "shareit"
	}
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.API.HTTP.Port == 0 {
		c.API.HTTP.Port = 9090
	}
	if c.API.RateLimit.Window == 0 {
		c.API.RateLimit.Window = time.Minute
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9100
	}
	if c.Backup.StoragePath == "" {
		c.Backup.StoragePath = "./backups"
	}

	if c.Gateway.Port == 0 {
		c.Gateway.Port = 8080
	}
	if c.Gateway.ServerURL == "" {
		c.Gateway.ServerURL = fmt.Sprintf("http://localhost:%d", c.API.HTTP.Port)
	}
	if c.Gateway.Timeout == 0 {
		c.Gateway.Timeout = 10 * time.Second
	}
	if c.Gateway.RateLimit.Burst <= 0 {
		c.Gateway.RateLimit.Burst = 5
	}
	if c.Gateway.Retry.MaxRetries == 0 {
		c.Gateway.Retry.MaxRetries = 2
	}
	if c.Gateway.Retry.InitialDelay == 0 {
		c.Gateway.Retry.InitialDelay = 100 * time.Millisecond
	}

	if c.Pagination.DefaultSize == 0 {
		c.Pagination.DefaultSize = models.DefaultPageSize
	}
	if c.Pagination.MaxSize == 0 {
		c.Pagination.MaxSize = models.MaxPageSize
	}
}
