// Package log provides slog construction with redaction of credentials and
// submitter personal data.
//
// The SecureHandler wraps any slog.Handler and rewrites attributes before
// they are written:
//   - Form service credentials and session cookies are replaced by a mask
//   - Submitter e-mail addresses are reduced to their first letter and domain
//   - Dates of birth are masked
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("login", "username", creds.Username) // username=***REDACTED***
//	logger.Warn("row skipped", "email", "jo.lin@college.edu") // email=j***@college.edu
package log
