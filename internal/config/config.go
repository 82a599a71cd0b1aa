// Package config loads tool configuration by layering defaults, an
// optional YAML file, and environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds process configuration for the CLI and the API server.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string `koanf:"db_path"`

	// FPS is the default source-video frame rate used to derive timestamps.
	FPS float64 `koanf:"fps"`

	// FFmpegBin is the ffmpeg executable used by the export command.
	FFmpegBin string `koanf:"ffmpeg_bin"`

	// AnthropicModel is the model id for the ask command.
	AnthropicModel string `koanf:"anthropic_model"`

	// ListenAddr is the HTTP API listen address for the serve command.
	ListenAddr string `koanf:"listen_addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:         filepath.Join(userHome(), ".shotmetrics", "metrics.db"),
		FPS:            30,
		FFmpegBin:      "ffmpeg",
		AnthropicModel: "claude-haiku-4-5-20251001",
		ListenAddr:     "127.0.0.1:8777",
	}
}

// Load builds a Config by layering, lowest precedence first: defaults, a
// YAML file named by SHOTMETRICS_CONFIG, and SHOTMETRICS_* env vars
// (SHOTMETRICS_DB_PATH, SHOTMETRICS_FPS, ...).
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("SHOTMETRICS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("SHOTMETRICS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "shotmetrics_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		return nil, errors.New("db_path must not be empty")
	}
	if cfg.FPS <= 0 {
		return nil, errors.New("fps must be positive")
	}
	return &cfg, nil
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
