// Package config loads server and Gemini settings from .env, an optional YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
)

type Config struct {
	Server ServerConfig      `mapstructure:"server"`
	Gemini GeminiConfig      `mapstructure:"gemini"`
	Map    MapConfig         `mapstructure:"map"`
	Log    logging.LogConfig `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode          string `mapstructure:"mode"`
	SessionName   string `mapstructure:"session_name"`
	SessionSecret string `mapstructure:"session_secret"`
	// PublicURL is advertised in the agent card.
	PublicURL string `mapstructure:"public_url"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	// FastModel serves geocoding, extraction and the assistant; ProModel
	// serves the strategic analysis.
	FastModel       string  `mapstructure:"fast_model"`
	ProModel        string  `mapstructure:"pro_model"`
	Temperature     float32 `mapstructure:"temperature"`
	TopP            float32 `mapstructure:"top_p"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens"`
}

type MapConfig struct {
	CenterLat float64 `mapstructure:"center_lat"`
	CenterLng float64 `mapstructure:"center_lng"`
	Zoom      int     `mapstructure:"zoom"`
}

// DefaultSessionSecret signs cookies when nothing else is configured. It is
// only accepted outside release mode.
const DefaultSessionSecret = "change-me-in-production"

const releaseMode = "release"

var (
	ErrMissingAPIKey        = errors.New("GEMINI_API_KEY environment variable is required")
	ErrInvalidPort          = errors.New("server port must not be empty")
	ErrDefaultSessionSecret = errors.New("server session secret must be set in release mode (MAPPER_SERVER_SESSION_SECRET)")
)

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Server.Port == "" {
		return ErrInvalidPort
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 20 {
		return fmt.Errorf("map zoom %d out of range [0,20]", c.Map.Zoom)
	}
	return nil
}

// ValidateServer adds the checks that only matter when serving HTTP. Release
// mode refuses the built-in session secret.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Server.Mode == releaseMode && (c.Server.SessionSecret == "" || c.Server.SessionSecret == DefaultSessionSecret) {
		return ErrDefaultSessionSecret
	}
	return nil
}

// Addr is the listen address for gin.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
