package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBaseURL is the admin host of the remote form service.
	DefaultBaseURL = "https://admin.typeform.com"

	// DefaultSeniorFormID identifies the senior bioform export.
	DefaultSeniorFormID = "3146280"

	// DefaultGroupFormID identifies the group bioform export.
	DefaultGroupFormID = "3146326"

	// DefaultOpenDate is the UTC cutoff: only submissions started after it
	// belong to the current yearbook.
	DefaultOpenDate = "2017-04-01 00:00:00"

	// TimestampLayout is the layout of the export's timestamp columns and of OpenDate.
	TimestampLayout = "2006-01-02 15:04:05"

	// DefaultAddr is the listen address of the report server.
	DefaultAddr = ":8080"

	// DefaultTimeout bounds one HTTP round trip to the form service.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxAttempts is the number of tries for a transient fetch failure.
	DefaultMaxAttempts = 3

	// DefaultInitialDelay is the wait before the second attempt.
	DefaultInitialDelay = 500 * time.Millisecond

	// DefaultMaxDelay caps the backoff delay.
	DefaultMaxDelay = 5 * time.Second

	// DefaultBackoffMultiplier grows the delay between attempts.
	DefaultBackoffMultiplier = 2.0

	// DefaultBatchSize is the number of reports exported concurrently by "export --all".
	DefaultBatchSize = 2

	// AppName is the application name used for XDG directory paths.
	AppName = "bioform"

	// UsernameEnv and PasswordEnv name the credential environment variables.
	UsernameEnv = "TYPEFORM_USERNAME"
	PasswordEnv = "TYPEFORM_PASSWORD" //nolint:gosec // environment variable name, not a secret
)

// RetryPolicy defines bounded exponential backoff for transient fetch failures.
type RetryPolicy struct {
	MaxAttempts       int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// Delay returns the wait before the given attempt (1-based).
// The first attempt never waits.
func (rp RetryPolicy) Delay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delay := float64(rp.InitialDelay)
	for i := 2; i < attempt; i++ {
		delay *= rp.BackoffMultiplier
	}

	if rp.MaxDelay > 0 && time.Duration(delay) > rp.MaxDelay {
		return rp.MaxDelay
	}
	return time.Duration(delay)
}

// Config holds all configuration options for bioform.
// It is built once at process start and passed down explicitly; nothing in
// the module reads configuration from globals.
type Config struct {
	// BaseURL is the form service admin URL, without trailing slash.
	BaseURL string

	// SeniorFormID and GroupFormID identify the two remote exports.
	SeniorFormID string
	GroupFormID  string

	// OpenDate is the cutoff in TimestampLayout (UTC). Rows started at or
	// before it are dropped. Empty disables the cutoff.
	OpenDate string

	// Addr is the listen address of the report server.
	Addr string

	// Timeout bounds one HTTP round trip. Zero means no timeout.
	Timeout time.Duration

	// Retry is applied to transient fetch failures.
	Retry RetryPolicy

	// BatchSize is the concurrency of "export --all".
	BatchSize int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the YAML file the values were loaded from, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		SeniorFormID: DefaultSeniorFormID,
		GroupFormID:  DefaultGroupFormID,
		OpenDate:     DefaultOpenDate,
		Addr:         DefaultAddr,
		Timeout:      DefaultTimeout,
		Retry: RetryPolicy{
			MaxAttempts:       DefaultMaxAttempts,
			InitialDelay:      DefaultInitialDelay,
			MaxDelay:          DefaultMaxDelay,
			BackoffMultiplier: DefaultBackoffMultiplier,
		},
		BatchSize: DefaultBatchSize,
	}
}

// XDGConfigDir returns the XDG config directory for bioform.
// On Linux: ~/.config/bioform
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	for _, id := range []string{c.SeniorFormID, c.GroupFormID} {
		if !isNumeric(id) {
			return fmt.Errorf("%w: %q", ErrMissingFormID, id)
		}
	}

	if c.OpenDate != "" {
		if _, err := c.Cutoff(); err != nil {
			return err
		}
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Retry.InitialDelay < 0 || c.Retry.MaxDelay < 0 || c.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoff
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	return nil
}

// Cutoff returns the parsed OpenDate, or the zero time when no cutoff is set.
func (c *Config) Cutoff() (time.Time, error) {
	if c.OpenDate == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(TimestampLayout, c.OpenDate, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidOpenDate, c.OpenDate)
	}
	return t, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
