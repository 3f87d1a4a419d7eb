package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "MAPPER"

var defaults = map[string]interface{}{
	"server.port":              "8080",
	"server.mode":              "release",
	"server.session_name":      "mapper_session",
	"server.session_secret":    DefaultSessionSecret,
	"server.public_url":        "",
	"gemini.api_key":           "",
	"gemini.fast_model":        "gemini-3-flash-preview",
	"gemini.pro_model":         "gemini-3-pro-preview",
	"gemini.temperature":       0.7,
	"gemini.top_p":             0.95,
	"gemini.max_output_tokens": 2048,
	"map.center_lat":           27.2730,
	"map.center_lng":           -80.3582,
	"map.zoom":                 12,
	"log.level":                "info",
	"log.format":               "json",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	// The bare names predate the MAPPER_ prefix and stay supported.
	_ = v.BindEnv("gemini.api_key", "GEMINI_API_KEY", "MAPPER_GEMINI_API_KEY")
	_ = v.BindEnv("server.port", "PORT", "MAPPER_SERVER_PORT")
	return v
}

// Load reads .env (when present), then the YAML file at path (when path is
// not empty), then environment overrides. It does not validate.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
