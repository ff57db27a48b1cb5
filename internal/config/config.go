// Package config holds the process configuration. It is parsed once at
// startup and passed by reference to the components that need it; deep
// logic never reads the environment directly.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries every external credential and tunable the application
// uses. All fields are optional at parse time: a missing credential
// disables the feature that needs it instead of failing startup.
type Config struct {
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	SpeechKey    string `env:"SPEECH_KEY"`
	SpeechRegion string `env:"SPEECH_REGION" envDefault:"westeurope"`
	VoiceName    string `env:"VOICE_NAME" envDefault:"en-US-JennyMultilingualNeural"`
	Language     string `env:"LANGUAGE" envDefault:"en-US"`

	DBPath     string `env:"SUCHEF_DB" envDefault:"recipe_history.db"`
	RecipesDir string `env:"SUCHEF_RECIPES_DIR" envDefault:"recipes"`
	CacheDir   string `env:"SUCHEF_CACHE_DIR" envDefault:".suchef-cache"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// AIEnabled reports whether language-model features can run.
func (c *Config) AIEnabled() bool { return c.OpenAIAPIKey != "" }

// SpeechEnabled reports whether the Azure Speech capability can run.
func (c *Config) SpeechEnabled() bool { return c.SpeechKey != "" && c.SpeechRegion != "" }
