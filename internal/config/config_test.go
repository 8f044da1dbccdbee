package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears variables for the duration of a test
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if old, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "SEASON", "PICKERS", "WORKERS", "FINAL_DIR", "METRICS_DIR",
		"DATABASE_ENABLED", "REDIS_ENABLED", "REDIS_TTL", "REFRESH_CRON", "REDIS_HOST", "REDIS_PORT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "docs/data/final", cfg.FinalDir)
	assert.Equal(t, "docs/data/metrics", cfg.MetricsDir)
	assert.Equal(t, []string{"Mat", "Nikki"}, cfg.Pickers)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.DatabaseEnabled)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 24*time.Hour, cfg.RedisTTL)
	assert.Equal(t, "*/30 * * * *", cfg.RefreshCron)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SEASON", "2024")
	t.Setenv("PICKERS", " Mat , Nikki ,Sam,")
	t.Setenv("WORKERS", "4")
	t.Setenv("CHART", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2024", cfg.Season)
	assert.Equal(t, []string{"Mat", "Nikki", "Sam"}, cfg.Pickers)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Chart)
}

func TestLoad_InvalidWorkers(t *testing.T) {
	t.Setenv("WORKERS", "abc")
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			FinalDir:   "final",
			MetricsDir: "metrics",
			Pickers:    []string{"Mat", "Nikki"},
			Workers:    1,
			AppEnv:     "development",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no pickers", mutate: func(c *Config) { c.Pickers = nil }, wantErr: true},
		{name: "duplicate picker", mutate: func(c *Config) { c.Pickers = []string{"Mat", "mat"} }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "no metrics dir", mutate: func(c *Config) { c.MetricsDir = "" }, wantErr: true},
		{
			name: "database without password in production",
			mutate: func(c *Config) {
				c.AppEnv = "production"
				c.DatabaseEnabled = true
			},
			wantErr: true,
		},
		{
			name:   "database without password in development",
			mutate: func(c *Config) { c.DatabaseEnabled = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParsePickers(t *testing.T) {
	assert.Equal(t, []string{"Mat", "Nikki"}, ParsePickers("Mat, Nikki"))
	assert.Empty(t, ParsePickers(" , "))
}
