package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			Host:         "0.0.0.0",
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Worker: WorkerConfig{
			Concurrency: 5,
			QueueGroup:  "analysis-workers",
			JobTimeout:  time.Minute,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "dev",
			Name:    "testsmith",
			SSLMode: "disable",
		},
		NATS: NATSConfig{URL: "nats://localhost:4222"},
		Analysis: AnalysisConfig{
			MaxSourceSize:    DefaultMaxSourceSize,
			DefaultFramework: "jest",
			TemplateCacheTTL: 5 * time.Minute,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "zero worker concurrency",
			mutate: func(c *Config) { c.Worker.Concurrency = 0 },
		},
		{
			name:   "database port out of range",
			mutate: func(c *Config) { c.Database.Port = 70000 },
		},
		{
			name:   "database port zero",
			mutate: func(c *Config) { c.Database.Port = 0 },
		},
		{
			name:   "negative max source size",
			mutate: func(c *Config) { c.Analysis.MaxSourceSize = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestMaxSourceSize_FallsBackToDefault(t *testing.T) {
	cfg := validConfig()
	cfg.Analysis.MaxSourceSize = 0
	assert.Equal(t, DefaultMaxSourceSize, cfg.MaxSourceSize())

	cfg.Analysis.MaxSourceSize = 4096
	assert.Equal(t, 4096, cfg.MaxSourceSize())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	dsn := validConfig().Database.DSN()
	assert.Equal(t, "host=localhost port=5432 user=dev password= dbname=testsmith sslmode=disable", dsn)
}
