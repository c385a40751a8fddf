package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// CatalogDir overrides the embedded world, events and templates YAML.
	CatalogDir string `env:"CATALOG_DIR"`

	Seed          int64         `env:"GAME_SEED"`
	EventInterval time.Duration `env:"EVENT_INTERVAL" envDefault:"10s"`
	EventChance   float64       `env:"EVENT_CHANCE" envDefault:"0.3"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	// LogFile is where logs go while the TUI owns the terminal.
	LogFile string `env:"LOG_FILE" envDefault:"game.log"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	if c.EventInterval <= 0 {
		return fmt.Errorf("EVENT_INTERVAL must be positive, got %s", c.EventInterval)
	}
	if c.EventChance <= 0 || c.EventChance > 1 {
		return fmt.Errorf("EVENT_CHANCE must be in (0, 1], got %v", c.EventChance)
	}
	return nil
}

// RequireGemini reports an error when no Gemini API key is configured.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}
