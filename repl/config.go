package repl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the shell settings read from a YAML file.
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	HistoryLimit       int    `yaml:"history_limit"`
	MaxDepth           int    `yaml:"max_depth"`
	LogLevel           string `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Prompt:             "rusp> ",
		ContinuationPrompt: "  ... ",
		HistoryFile:        "~/.rusp_history",
		HistoryLimit:       1000,
		MaxDepth:           10000,
		LogLevel:           "info",
	}
}

// LoadConfig overlays the file at path on top of the defaults. A missing
// file is not an error; unknown keys are.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(expandHome(path))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.HistoryLimit < 0 {
		return cfg, fmt.Errorf("config: history_limit must not be negative, got %d", cfg.HistoryLimit)
	}
	if cfg.MaxDepth < 0 {
		return cfg, fmt.Errorf("config: max_depth must not be negative, got %d", cfg.MaxDepth)
	}
	return cfg, nil
}

// WriteConfig serialises cfg to path.
func WriteConfig(cfg Config, path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: marshal %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("config: encoder close: %w", err)
	}
	if err := os.WriteFile(expandHome(path), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// HistoryPath is the history file with a leading ~ expanded, or "" when
// history is disabled.
func (c Config) HistoryPath() string {
	return expandHome(c.HistoryFile)
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
