package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "dispatch_db", cfg.Database.Database)
				assert.Equal(t, "dispatch_exchange", cfg.RabbitMQ.Exchange.Name)
				assert.Equal(t, "rep_notifications", cfg.RabbitMQ.Queue.Name)
				assert.Equal(t, 3*time.Hour, cfg.Dispatch.MinGap)
				require.NotNil(t, cfg.Dispatch.FullDayBlockOnMissingAnchor)
				assert.True(t, *cfg.Dispatch.FullDayBlockOnMissingAnchor)
				assert.Equal(t, "dispatch-api-service", cfg.App.Name)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "dispatch_db",
		},
		RabbitMQ: RabbitMQConfig{
			Host:     "localhost",
			Port:     5672,
			Exchange: ExchangeConfig{Name: "dispatch_exchange"},
			Queue:    QueueConfig{Name: "rep_notifications"},
		},
		Dispatch: DispatchConfig{MinGap: 3 * time.Hour},
		Worker: WorkerConfig{
			Concurrency:     4,
			DeliveryTimeout: 30 * time.Second,
			ShutdownTimeout: 20 * time.Second,
		},
	}
}

func TestValidateAPIConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		errString string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:      "bad server port",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			errString: "invalid server port",
		},
		{
			name:      "missing database host",
			mutate:    func(c *Config) { c.Database.Host = "" },
			errString: "database host is required",
		},
		{
			name:      "missing database name",
			mutate:    func(c *Config) { c.Database.Database = "" },
			errString: "database name is required",
		},
		{
			name:      "missing rabbitmq exchange",
			mutate:    func(c *Config) { c.RabbitMQ.Exchange.Name = "" },
			errString: "rabbitmq exchange name is required",
		},
		{
			name:      "negative min gap",
			mutate:    func(c *Config) { c.Dispatch.MinGap = -time.Hour },
			errString: "min_gap must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.ValidateAPIConfig()
			if tt.errString == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			}
		})
	}
}

func TestValidateWorkerConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		errString string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:      "zero concurrency",
			mutate:    func(c *Config) { c.Worker.Concurrency = 0 },
			errString: "concurrency must be greater than 0",
		},
		{
			name:      "zero delivery timeout",
			mutate:    func(c *Config) { c.Worker.DeliveryTimeout = 0 },
			errString: "delivery_timeout must be greater than 0",
		},
		{
			name:      "zero shutdown timeout",
			mutate:    func(c *Config) { c.Worker.ShutdownTimeout = 0 },
			errString: "shutdown_timeout must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.ValidateWorkerConfig()
			if tt.errString == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			}
		})
	}
}

func TestDispatchPolicy(t *testing.T) {
	// Absent section falls back to the standard rules.
	policy := DispatchConfig{}.Policy()
	assert.Equal(t, 3*time.Hour, policy.MinGap)
	assert.True(t, policy.FullDayBlockOnMissingAnchor)

	noBlock := false
	policy = DispatchConfig{MinGap: time.Hour, FullDayBlockOnMissingAnchor: &noBlock}.Policy()
	assert.Equal(t, time.Hour, policy.MinGap)
	assert.False(t, policy.FullDayBlockOnMissingAnchor)
}
