package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// TestRemoteFetchError verifies wrapping and retry classification.
func TestRemoteFetchError(t *testing.T) {
	t.Parallel()

	t.Run("unavailable is retryable", func(t *testing.T) {
		t.Parallel()
		err := &RemoteFetchError{Op: "export", URL: "https://forms.example/x", StatusCode: 503, Err: ErrRemoteUnavailable}
		if !err.Retryable() {
			t.Error("expected 503 to be retryable")
		}
		if !errors.Is(err, ErrRemoteUnavailable) {
			t.Error("expected errors.Is to match ErrRemoteUnavailable")
		}
		if !strings.Contains(err.Error(), "status 503") {
			t.Errorf("message %q should mention the status", err.Error())
		}
	})

	t.Run("authentication is not retryable", func(t *testing.T) {
		t.Parallel()
		err := &RemoteFetchError{Op: "login", URL: "https://forms.example/login", Err: ErrAuthentication}
		if err.Retryable() {
			t.Error("expected authentication failure not to be retryable")
		}
		if strings.Contains(err.Error(), "status") {
			t.Errorf("message %q should not mention a status", err.Error())
		}
	})
}

// TestSchemaMismatchError verifies the missing field is named.
func TestSchemaMismatchError(t *testing.T) {
	t.Parallel()

	err := error(&SchemaMismatchError{Form: FormSenior, Field: "Date of Birth"})
	if !strings.Contains(err.Error(), `"Date of Birth"`) {
		t.Errorf("message %q should name the field", err.Error())
	}

	var sm *SchemaMismatchError
	if !errors.As(err, &sm) || sm.Field != "Date of Birth" {
		t.Error("expected errors.As to recover the field")
	}
}

// TestMalformedValueError verifies both the sentinel and the cause are reachable.
func TestMalformedValueError(t *testing.T) {
	t.Parallel()

	_, parseErr := time.Parse("2006-01-02", "12/25/1999")
	err := &MalformedValueError{Row: 3, Key: "jo@college.edu", Field: "Date of Birth", Value: "12/25/1999", Err: parseErr}

	if !errors.Is(err, ErrMalformedValue) {
		t.Error("expected errors.Is to match ErrMalformedValue")
	}
	var pe *time.ParseError
	if !errors.As(err, &pe) {
		t.Error("expected errors.As to reach the parse error")
	}
}

// TestRunAddFailure verifies failure bookkeeping.
func TestRunAddFailure(t *testing.T) {
	t.Parallel()

	run := NewRun(ReportSeniors)
	run.AddFailure("compose_seniors", 0, "", &MalformedValueError{Row: 7, Key: "a@b.edu", Field: "Date of Birth", Value: "x", Err: errors.New("bad")})
	run.AddFailure("normalize", 2, "", errors.New("plain"))

	if len(run.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(run.Failures))
	}
	if run.Failures[0].Row != 7 || run.Failures[0].Key != "a@b.edu" {
		t.Errorf("unexpected first failure: %+v", run.Failures[0])
	}
	if run.Failures[1].Row != 2 || run.Failures[1].Step != "normalize" {
		t.Errorf("unexpected second failure: %+v", run.Failures[1])
	}
	if run.Succeeded() {
		t.Error("run without a table should not report success")
	}
}
