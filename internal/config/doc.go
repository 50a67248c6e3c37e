// Package config provides configuration structures and utilities for bioform.
// It defines the remote form service settings, report cutoff, server address
// and retry policy, plus loading of the credential pair from the environment.
package config
