package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name searched in the current directory.
const DefaultConfigFile = ".bioform.yaml"

// xdgConfigFile is the file name inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the YAML configuration file.
// Every field is optional; unset fields keep the NewConfig defaults.
type File struct {
	// BaseURL is the form service admin URL.
	BaseURL string `yaml:"base_url,omitempty"`

	// Forms holds the numeric export identifiers.
	Forms FormsFile `yaml:"forms,omitempty"`

	// OpenDate is the submission cutoff in "YYYY-MM-DD HH:MM:SS" (UTC).
	// Set it to "none" to disable the cutoff.
	OpenDate string `yaml:"open_date,omitempty"`

	// Server holds report server settings.
	Server ServerFile `yaml:"server,omitempty"`

	// Retry holds the fetch retry policy.
	Retry RetryFile `yaml:"retry,omitempty"`
}

// FormsFile holds the per-form identifiers.
type FormsFile struct {
	Senior string `yaml:"senior,omitempty"`
	Group  string `yaml:"group,omitempty"`
}

// ServerFile holds report server settings.
type ServerFile struct {
	Addr    string `yaml:"addr,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// RetryFile holds the retry policy as written in YAML.
type RetryFile struct {
	MaxAttempts       int     `yaml:"max_attempts,omitempty"`
	InitialDelay      string  `yaml:"initial_delay,omitempty"`
	MaxDelay          string  `yaml:"max_delay,omitempty"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier,omitempty"`
}

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cf, nil
}

// Apply copies the values set in the file over cfg.
func (cf *File) Apply(cfg *Config) error {
	if cf.BaseURL != "" {
		cfg.BaseURL = cf.BaseURL
	}
	if cf.Forms.Senior != "" {
		cfg.SeniorFormID = cf.Forms.Senior
	}
	if cf.Forms.Group != "" {
		cfg.GroupFormID = cf.Forms.Group
	}
	switch cf.OpenDate {
	case "":
	case "none":
		cfg.OpenDate = ""
	default:
		cfg.OpenDate = cf.OpenDate
	}
	if cf.Server.Addr != "" {
		cfg.Addr = cf.Server.Addr
	}

	var err error
	if cfg.Timeout, err = parseDuration("server.timeout", cf.Server.Timeout, cfg.Timeout); err != nil {
		return err
	}
	if cf.Retry.MaxAttempts != 0 {
		cfg.Retry.MaxAttempts = cf.Retry.MaxAttempts
	}
	if cfg.Retry.InitialDelay, err = parseDuration("retry.initial_delay", cf.Retry.InitialDelay, cfg.Retry.InitialDelay); err != nil {
		return err
	}
	if cfg.Retry.MaxDelay, err = parseDuration("retry.max_delay", cf.Retry.MaxDelay, cfg.Retry.MaxDelay); err != nil {
		return err
	}
	if cf.Retry.BackoffMultiplier != 0 {
		cfg.Retry.BackoffMultiplier = cf.Retry.BackoffMultiplier
	}

	return nil
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .bioform.yaml in the current directory
// 3. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), xdgConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// Load builds a Config from defaults and the configuration file found by
// FindConfigFile. An explicitly requested file that does not exist is an
// error; a missing implicit file is not.
func Load(configPath string) (*Config, error) {
	cfg := NewConfig()

	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return cfg, nil
	}

	cf, err := LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if err := cf.Apply(cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	cfg.ConfigFilePath = path

	return cfg, nil
}
