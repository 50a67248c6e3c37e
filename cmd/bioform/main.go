// Package main provides the entry point for the bioform CLI.
//
// bioform turns the raw exports of the senior and student-group bioforms
// into the CSV files the yearbook is typeset from. It can serve the reports
// over HTTP or write them to disk.
//
// Usage:
//
//	bioform serve
//	bioform export --all -o out/
//
// Credentials are read from TYPEFORM_USERNAME and TYPEFORM_PASSWORD.
// See --help for all available options.
package main

func main() {
	Execute()
}
