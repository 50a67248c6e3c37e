package config

import "errors"

// Configuration errors.
// These errors are returned by Config.Validate and LoadCredentials. Callers
// use errors.Is for programmatic handling; every one of them is fatal at
// process start.
var (
	// ErrMissingCredential is returned when a required credential
	// environment variable is unset or blank.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidBaseURL is returned when the form service URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base url: must be an absolute http or https URL")

	// ErrMissingFormID is returned when a form identifier is empty or not numeric.
	ErrMissingFormID = errors.New("invalid form id: must be a non-empty number")

	// ErrInvalidTimeout is returned when the HTTP timeout is negative.
	// Zero disables the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidMaxAttempts is returned when retry.max_attempts is below 1.
	ErrInvalidMaxAttempts = errors.New("invalid retry max attempts: must be at least 1")

	// ErrInvalidBackoff is returned when the retry delays or multiplier are out of range.
	ErrInvalidBackoff = errors.New("invalid retry backoff: delays must be non-negative and multiplier >= 1")

	// ErrInvalidOpenDate is returned when the cutoff timestamp cannot be parsed.
	ErrInvalidOpenDate = errors.New("invalid open date: expected YYYY-MM-DD HH:MM:SS")

	// ErrInvalidBatchSize is returned when the export concurrency is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")
)
