// Package config reads readquest settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"readquest/internal/engine"
)

// Config holds process configuration. Command-line flags override it.
type Config struct {
	DBPath      string        `env:"READQUEST_DB"`
	DisplayName string        `env:"READQUEST_DISPLAY_NAME"`
	LevelPolicy string        `env:"READQUEST_LEVEL_POLICY"     envDefault:"static"`
	APIKey      string        `env:"READQUEST_OPENAI_API_KEY"`
	BaseURL     string        `env:"READQUEST_OPENAI_BASE_URL"`
	Model       string        `env:"READQUEST_MODEL"            envDefault:"gpt-4o-mini"`
	AITimeout   time.Duration `env:"READQUEST_AI_TIMEOUT"       envDefault:"8s"`
	Verbose     bool          `env:"READQUEST_VERBOSE"`

	// SharedAPIKey is the conventional OpenAI variable, used when no
	// readquest-specific key is set.
	SharedAPIKey string `env:"OPENAI_API_KEY"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AITimeout <= 0 {
		return Config{}, fmt.Errorf("parse env: READQUEST_AI_TIMEOUT must be positive, got %s", cfg.AITimeout)
	}
	if _, err := engine.ParseLevelPolicy(cfg.LevelPolicy); err != nil {
		return Config{}, fmt.Errorf("parse env: READQUEST_LEVEL_POLICY: %w", err)
	}
	return cfg, nil
}

// OpenAIKey returns the key for the text and vision collaborators, or "" when
// they should run on fallbacks only.
func (c Config) OpenAIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return c.SharedAPIKey
}

// Policy returns the configured level policy.
func (c Config) Policy() (engine.LevelPolicy, error) {
	return engine.ParseLevelPolicy(c.LevelPolicy)
}
