// Package config loads application configuration from defaults, an
// optional YAML file, a .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/generation"
	"github.com/abhisek/eternal/internal/llm"
)

// Config is the complete application configuration.
type Config struct {
	LLM        llm.Config        `yaml:"llm"`
	Generation generation.Config `yaml:"generation"`
	// Session prefills the setup form.
	Session  domain.Settings `yaml:"session"`
	Logging  LoggingConfig   `yaml:"logging"`
	Database DatabaseConfig  `yaml:"database"`
}

// LoggingConfig controls the zap file logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty = default state path
}

// DatabaseConfig locates the diagnostics event log.
type DatabaseConfig struct {
	Path string `yaml:"path"` // empty = store.DefaultDBPath
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LLM:        llm.DefaultConfig(),
		Generation: generation.DefaultConfig(),
		Session:    domain.DefaultSettings(),
		Logging:    LoggingConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/eternal/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "eternal", "config.yaml"), nil
}

// Load builds the configuration. An explicit path must exist; when path is
// empty the default path is read if present. Values from .env never
// override variables already set in the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Defaults only.
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.applyEnvOverrides()
	llm.ApplyEnv(&cfg.LLM)
	llm.ApplyDiscovery(&cfg.LLM)

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ETERNAL_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("ETERNAL_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("ETERNAL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the pieces that must be usable before a session starts.
// A missing credential is reported as *llm.ErrMissingCredential.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session defaults: %w", err)
	}
	return nil
}
