// Package professor builds the directory of professors named by seniors and
// the count of mentions per surname.
package professor
