package model

import (
	"errors"
	"fmt"
)

// Remote form service errors.
// RemoteFetchError wraps one of these so callers can decide whether a retry
// is worthwhile with errors.Is.
var (
	// ErrAuthentication is returned when the form service rejects the login
	// or serves a login page instead of the export. Retrying will not help.
	ErrAuthentication = errors.New("form service authentication failed")

	// ErrRemoteUnavailable is returned for network failures and 5xx responses.
	ErrRemoteUnavailable = errors.New("form service unavailable")
)

// ErrMalformedValue is the sentinel wrapped by MalformedValueError.
var ErrMalformedValue = errors.New("malformed value")

// RemoteFetchError reports a failed login or export against the form service.
type RemoteFetchError struct {
	// Op is the failed operation ("login" or "export").
	Op string

	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *RemoteFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient.
func (e *RemoteFetchError) Retryable() bool {
	return errors.Is(e.Err, ErrRemoteUnavailable)
}

// SchemaMismatchError reports a column the pipeline requires that is missing
// from the remote export, usually because the form's questions changed.
type SchemaMismatchError struct {
	Form  FormKind
	Field string
}

// Error implements error.
func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s form export is missing field %q", e.Form, e.Field)
}

// MalformedValueError reports a row whose value could not be interpreted.
// The row is skipped; the rest of the report is still produced.
type MalformedValueError struct {
	// Row is the 0-based index of the row in the remote export.
	Row int

	// Key is the row's identity key (email or group name), if known.
	Key string

	// Field is the column holding the bad value.
	Field string

	// Value is the offending value.
	Value string

	// Err is the parse error.
	Err error
}

// Error implements error.
func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("row %d (%s): field %q has malformed value %q: %v", e.Row, e.Key, e.Field, e.Value, e.Err)
}

// Unwrap returns both the sentinel and the parse error.
func (e *MalformedValueError) Unwrap() []error {
	return []error{ErrMalformedValue, e.Err}
}
