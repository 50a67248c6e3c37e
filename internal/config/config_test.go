package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BaseURL is the typeform admin host", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "https://admin.typeform.com" {
			t.Errorf("expected BaseURL to be 'https://admin.typeform.com', got '%s'", cfg.BaseURL)
		}
	})

	t.Run("default form ids", func(t *testing.T) {
		t.Parallel()
		if cfg.SeniorFormID != "3146280" {
			t.Errorf("expected SeniorFormID 3146280, got %s", cfg.SeniorFormID)
		}
		if cfg.GroupFormID != "3146326" {
			t.Errorf("expected GroupFormID 3146326, got %s", cfg.GroupFormID)
		}
	})

	t.Run("default OpenDate", func(t *testing.T) {
		t.Parallel()
		if cfg.OpenDate != "2017-04-01 00:00:00" {
			t.Errorf("unexpected OpenDate %q", cfg.OpenDate)
		}
	})

	t.Run("default retry policy", func(t *testing.T) {
		t.Parallel()
		if cfg.Retry.MaxAttempts != 3 {
			t.Errorf("expected 3 attempts, got %d", cfg.Retry.MaxAttempts)
		}
		if cfg.Retry.InitialDelay != 500*time.Millisecond {
			t.Errorf("expected 500ms initial delay, got %v", cfg.Retry.InitialDelay)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case breaks exactly one rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"relative base url", func(c *Config) { c.BaseURL = "admin.typeform.com" }, ErrInvalidBaseURL},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://admin.typeform.com" }, ErrInvalidBaseURL},
		{"empty senior form id", func(c *Config) { c.SeniorFormID = "" }, ErrMissingFormID},
		{"non-numeric group form id", func(c *Config) { c.GroupFormID = "abc" }, ErrMissingFormID},
		{"bad open date", func(c *Config) { c.OpenDate = "April 1st" }, ErrInvalidOpenDate},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, ErrInvalidTimeout},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, ErrInvalidMaxAttempts},
		{"shrinking backoff", func(c *Config) { c.Retry.BackoffMultiplier = 0.5 }, ErrInvalidBackoff},
		{"negative delay", func(c *Config) { c.Retry.InitialDelay = -time.Second }, ErrInvalidBackoff},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, ErrInvalidBatchSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	t.Run("empty open date disables the cutoff", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.OpenDate = ""
		if err := cfg.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		cutoff, err := cfg.Cutoff()
		if err != nil || !cutoff.IsZero() {
			t.Errorf("expected zero cutoff, got %v (%v)", cutoff, err)
		}
	})

	t.Run("zero timeout is allowed", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Timeout = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestConfigCutoff verifies the cutoff is parsed as UTC.
func TestConfigCutoff(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	got, err := cfg.Cutoff()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2017, time.April, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Cutoff() = %v, want %v", got, want)
	}
}

// TestRetryPolicyDelay verifies exponential growth and the cap.
func TestRetryPolicyDelay(t *testing.T) {
	t.Parallel()

	rp := RetryPolicy{
		MaxAttempts:       5,
		InitialDelay:      100 * time.Millisecond,
		MaxDelay:          300 * time.Millisecond,
		BackoffMultiplier: 2,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 0},
		{2, 100 * time.Millisecond},
		{3, 200 * time.Millisecond},
		{4, 300 * time.Millisecond},
		{5, 300 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := rp.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

// TestLoadCredentials verifies that absent credentials are a configuration error.
func TestLoadCredentials(t *testing.T) {
	t.Parallel()

	env := func(values map[string]string) func(string) string {
		return func(k string) string { return values[k] }
	}

	t.Run("both present", func(t *testing.T) {
		t.Parallel()
		creds, err := LoadCredentials(env(map[string]string{
			UsernameEnv: " editor@yearbook.org ",
			PasswordEnv: "hunter2",
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if creds.Username != "editor@yearbook.org" || creds.Password != "hunter2" {
			t.Errorf("unexpected credentials: %+v", creds)
		}
	})

	t.Run("missing username", func(t *testing.T) {
		t.Parallel()
		_, err := LoadCredentials(env(map[string]string{PasswordEnv: "hunter2"}))
		if !errors.Is(err, ErrMissingCredential) {
			t.Errorf("expected ErrMissingCredential, got %v", err)
		}
	})

	t.Run("blank password", func(t *testing.T) {
		t.Parallel()
		_, err := LoadCredentials(env(map[string]string{UsernameEnv: "editor", PasswordEnv: "   "}))
		if !errors.Is(err, ErrMissingCredential) {
			t.Errorf("expected ErrMissingCredential, got %v", err)
		}
	})

	t.Run("String hides the password", func(t *testing.T) {
		t.Parallel()
		s := Credentials{Username: "editor", Password: "hunter2"}.String()
		if s == "" || strings.Contains(s, "hunter2") {
			t.Errorf("String() leaked the password: %s", s)
		}
	})
}

// TestLoadConfigFile tests YAML loading and application over defaults.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for a missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("applies set values and keeps defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bioform.yaml")
		content := `base_url: https://forms.example.org
forms:
  senior: "1111"
open_date: "2024-03-15 12:00:00"
server:
  addr: ":9000"
  timeout: 15s
retry:
  max_attempts: 5
  initial_delay: 1s
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BaseURL != "https://forms.example.org" {
			t.Errorf("BaseURL = %q", cfg.BaseURL)
		}
		if cfg.SeniorFormID != "1111" {
			t.Errorf("SeniorFormID = %q", cfg.SeniorFormID)
		}
		if cfg.GroupFormID != DefaultGroupFormID {
			t.Errorf("GroupFormID = %q, want default", cfg.GroupFormID)
		}
		if cfg.OpenDate != "2024-03-15 12:00:00" {
			t.Errorf("OpenDate = %q", cfg.OpenDate)
		}
		if cfg.Addr != ":9000" || cfg.Timeout != 15*time.Second {
			t.Errorf("server settings = %q %v", cfg.Addr, cfg.Timeout)
		}
		if cfg.Retry.MaxAttempts != 5 || cfg.Retry.InitialDelay != time.Second {
			t.Errorf("retry = %+v", cfg.Retry)
		}
		if cfg.Retry.MaxDelay != DefaultMaxDelay {
			t.Errorf("MaxDelay = %v, want default", cfg.Retry.MaxDelay)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("ConfigFilePath = %q", cfg.ConfigFilePath)
		}
	})

	t.Run("open_date none disables the cutoff", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		if err := (&File{OpenDate: "none"}).Apply(cfg); err != nil {
			t.Fatal(err)
		}
		if cfg.OpenDate != "" {
			t.Errorf("OpenDate = %q, want empty", cfg.OpenDate)
		}
	})

	t.Run("bad duration is reported with its key", func(t *testing.T) {
		t.Parallel()
		err := (&File{Retry: RetryFile{MaxDelay: "soon"}}).Apply(NewConfig())
		if err == nil || !strings.Contains(err.Error(), "retry.max_delay") {
			t.Errorf("expected error naming retry.max_delay, got %v", err)
		}
	})

	t.Run("explicit missing path is an error", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}
