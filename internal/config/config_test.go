package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Host: "0.0.0.0",
			Env:  "development",
		},
		Database: DatabaseConfig{
			URL: "postgres://localhost:5432/credit?sslmode=disable",
		},
		Business: BusinessConfig{
			ApprovalThreshold: 60,
			BlacklistCacheTTL: "10m",
			StatsCacheTTL:     "5m",
		},
		Health: HealthConfig{
			Timeout: "5s",
		},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"missing server port", func(c *Config) { c.Server.Port = "" }, true},
		{"missing database url", func(c *Config) { c.Database.URL = "" }, true},
		{"threshold above 100", func(c *Config) { c.Business.ApprovalThreshold = 101 }, true},
		{"threshold below 0", func(c *Config) { c.Business.ApprovalThreshold = -1 }, true},
		{"threshold at bounds", func(c *Config) { c.Business.ApprovalThreshold = 100 }, false},
		{"bad blacklist ttl", func(c *Config) { c.Business.BlacklistCacheTTL = "soon" }, true},
		{"bad stats ttl", func(c *Config) { c.Business.StatsCacheTTL = "later" }, true},
		{"bad health timeout", func(c *Config) { c.Health.Timeout = "never" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigDurationGetters(t *testing.T) {
	cfg := validConfig()

	require.Equal(t, 10*time.Minute, cfg.GetBlacklistCacheTTL())
	require.Equal(t, 5*time.Minute, cfg.GetStatsCacheTTL())
	require.Equal(t, 5*time.Second, cfg.GetHealthTimeout())
}

func TestConfigEnvironmentHelpers(t *testing.T) {
	cfg := validConfig()

	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.Server.Env = "production"
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}
