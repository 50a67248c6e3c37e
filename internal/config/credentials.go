package config

import (
	"fmt"
	"strings"
)

// Credentials is the login pair for the remote form service.
// It is loaded once at startup and passed by value to the fetcher.
type Credentials struct {
	Username string
	Password string
}

// String hides the password so the value is safe to print or log.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Username: %q, Password: ***}", c.Username)
}

// LoadCredentials reads the credential pair using getenv (os.Getenv in
// production). A missing or blank value is an ErrMissingCredential naming
// the variable; callers must treat it as fatal.
func LoadCredentials(getenv func(string) string) (Credentials, error) {
	username := strings.TrimSpace(getenv(UsernameEnv))
	if username == "" {
		return Credentials{}, fmt.Errorf("%w: %s is not set", ErrMissingCredential, UsernameEnv)
	}

	password := getenv(PasswordEnv)
	if strings.TrimSpace(password) == "" {
		return Credentials{}, fmt.Errorf("%w: %s is not set", ErrMissingCredential, PasswordEnv)
	}

	return Credentials{Username: username, Password: password}, nil
}
