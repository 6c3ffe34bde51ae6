package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Database DatabaseConfig `mapstructure:"database"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Log      LogConfig      `mapstructure:"log"`
}

// APIConfig holds API server configuration.
type APIConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// WorkerConfig holds worker configuration.
type WorkerConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	QueueGroup  string        `mapstructure:"queue_group"`
	JobTimeout  time.Duration `mapstructure:"job_timeout"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	Name           string `mapstructure:"name"`
	SSLMode        string `mapstructure:"sslmode"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// DSN returns the database connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

// AnalysisConfig holds source analysis configuration.
type AnalysisConfig struct {
	MaxSourceSize    int           `mapstructure:"max_source_size"`    // Maximum source size in bytes
	DefaultFramework string        `mapstructure:"default_framework"`  // Template framework when the caller omits one
	TemplateCacheTTL time.Duration `mapstructure:"template_cache_ttl"` // Read-through template cache refresh interval
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultMaxSourceSize is the analysis size limit applied when none is configured.
const DefaultMaxSourceSize = 1 << 20 // 1 MiB

// New creates a new Config instance from Viper.
func New(v *viper.Viper) *Config {
	var config Config

	// Unmarshal configuration
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("unable to decode config: %w", err))
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %w", err))
	}

	return &config
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Worker.Concurrency < 1 {
		return errors.New("worker.concurrency must be at least 1")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return errors.New("database.port must be between 1 and 65535")
	}

	if c.Analysis.MaxSourceSize < 0 {
		return errors.New("analysis.max_source_size cannot be negative")
	}

	return nil
}

// MaxSourceSize returns the configured analysis size limit, falling back to the default.
func (c *Config) MaxSourceSize() int {
	if c.Analysis.MaxSourceSize > 0 {
		return c.Analysis.MaxSourceSize
	}
	return DefaultMaxSourceSize
}
