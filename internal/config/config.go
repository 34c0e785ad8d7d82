package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	FixturesPath    string        `env:"LADDER_FIXTURES_PATH" envDefault:"fixtures.csv"`
	DatabaseURL     string        `env:"LADDER_DATABASE_URL"`
	Addr            string        `env:"LADDER_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LADDER_LOG_LEVEL" envDefault:"info"`
	FormWindow      int           `env:"LADDER_FORM_WINDOW" envDefault:"5"`
	ShutdownTimeout time.Duration `env:"LADDER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("fixtures_path", cfg.FixturesPath).
		Bool("database", cfg.DatabaseURL != "").
		Str("addr", cfg.Addr).
		Str("log_level", cfg.LogLevel).
		Int("form_window", cfg.FormWindow).
		Msg("configuration loaded")

	return cfg, nil
}

// Parse reads configuration from environment variables only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.FormWindow < 0 {
		return fmt.Errorf("LADDER_FORM_WINDOW must be >= 0, got %d", c.FormWindow)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LADDER_LOG_LEVEL: %w", err)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("LADDER_SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
