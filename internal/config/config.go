package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Grading
	Season     string   `envconfig:"SEASON" default:""`
	FinalDir   string   `envconfig:"FINAL_DIR" default:"docs/data/final"`
	MetricsDir string   `envconfig:"METRICS_DIR" default:"docs/data/metrics"`
	Pickers    []string `envconfig:"PICKERS" default:"Mat,Nikki"`
	Workers    int      `envconfig:"WORKERS" default:"1"`
	Chart      bool     `envconfig:"CHART" default:"false"`

	// Database
	DatabaseEnabled  bool   `envconfig:"DATABASE_ENABLED" default:"false"`
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"pickstats"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"pickstats"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" default:""`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisEnabled  bool          `envconfig:"REDIS_ENABLED" default:"false"`
	RedisHost     string        `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int           `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	RedisTTL      time.Duration `envconfig:"REDIS_TTL" default:"24h"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Scheduler
	RefreshCron string `envconfig:"REFRESH_CRON" default:"*/30 * * * *"`
	RunOnStart  bool   `envconfig:"RUN_ON_START" default:"true"`

	// Monitoring
	MetricsPort     int    `envconfig:"METRICS_PORT" default:"9090"`
	MetricsTextfile string `envconfig:"METRICS_TEXTFILE" default:""`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if present
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	cfg.Pickers = cleanPickers(cfg.Pickers)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Pickers) == 0 {
		return fmt.Errorf("PICKERS must name at least one picker")
	}

	seen := make(map[string]bool, len(c.Pickers))
	for _, p := range c.Pickers {
		key := strings.ToLower(p)
		if seen[key] {
			return fmt.Errorf("PICKERS lists %q more than once", p)
		}
		seen[key] = true
	}

	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1")
	}

	if c.FinalDir == "" || c.MetricsDir == "" {
		return fmt.Errorf("FINAL_DIR and METRICS_DIR are required")
	}

	if c.DatabaseEnabled && c.DatabasePassword == "" && c.IsProduction() {
		return fmt.Errorf("DATABASE_PASSWORD is required in production")
	}

	return nil
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or exits on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(ExitConfig)
	}
	return cfg
}

// ExitConfig is the process status for configuration errors (EX_CONFIG)
const ExitConfig = 78

// ParsePickers splits a comma separated picker list
func ParsePickers(s string) []string {
	return cleanPickers(strings.Split(s, ","))
}

func cleanPickers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
