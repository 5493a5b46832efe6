package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	stateDir = ".depflow"
	fileName = "config.yaml"
)

type Config struct {
	WorkspacePath string
	DBPath        string `validate:"required"`
	LogPath       string
	LogLevel      string `validate:"oneof=debug info warn error"`
	Environment   string `validate:"oneof=development production"`
}

// fileConfig mirrors the optional <workspace>/.depflow/config.yaml.
type fileConfig struct {
	DBPath      string `yaml:"db_path"`
	LogLevel    string `yaml:"log_level"`
	Environment string `yaml:"environment"`
}

var validate = validator.New()

func New(workspacePath string) (Config, error) {
	if workspacePath == "" {
		return Config{}, fmt.Errorf("workspace path is required")
	}
	cfg := Config{
		WorkspacePath: workspacePath,
		DBPath:        filepath.Join(workspacePath, stateDir, "depflow.db"),
		LogPath:       filepath.Join(workspacePath, stateDir, "depflow.log"),
		LogLevel:      "info",
		Environment:   "development",
	}
	file, err := readFile(filepath.Join(workspacePath, stateDir, fileName))
	if err != nil {
		return Config{}, err
	}
	if file.DBPath != "" {
		cfg.DBPath = file.DBPath
		if !filepath.IsAbs(cfg.DBPath) {
			cfg.DBPath = filepath.Join(workspacePath, cfg.DBPath)
		}
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.Environment != "" {
		cfg.Environment = file.Environment
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithLogLevel returns a copy with the level overridden, ignoring empty input.
func (c Config) WithLogLevel(level string) (Config, error) {
	if level == "" {
		return c, nil
	}
	c.LogLevel = level
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func readFile(path string) (fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	out := fileConfig{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return fileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return out, nil
}
