package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultFilename = ".lambdarc.yaml"

// Config holds the settings of the command line runner and the REPL.
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	MaxCallDepth       int    `yaml:"max_call_depth"`
	LogLevel           string `yaml:"log_level"`
}

func Default() *Config {
	history := ".lambda_history"
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, history)
	}

	return &Config{
		Prompt:             "New_line> ",
		ContinuationPrompt: "... ",
		HistoryFile:        history,
		MaxCallDepth:       10000,
		LogLevel:           "warn",
	}
}

// Load reads path over the defaults. Unknown keys are rejected. An empty or
// comment-only file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: open %s", path)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}

	cfg.HistoryFile = expandHome(cfg.HistoryFile)

	return cfg, nil
}

// Discover loads explicit when set, otherwise ~/.lambdarc.yaml when it exists,
// otherwise the defaults.
func Discover(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}

	path := filepath.Join(home, DefaultFilename)
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}

	return Load(path)
}

func (c *Config) Validate() error {
	if c.MaxCallDepth < 0 {
		return errors.Errorf("max_call_depth must not be negative, got %d", c.MaxCallDepth)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return 0, errors.Errorf("unknown log_level %q", c.LogLevel)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
