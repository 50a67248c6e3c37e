// Package server exposes the reports over HTTP.
//
// Every request computes its report from a fresh export of the remote form,
// so two downloads never share a login session or intermediate state.
//
// Routes:
//
//	GET /             plain-text index of the reports
//	GET /healthz      liveness check
//	GET /seniors      bioforms.csv
//	GET /groups       groups.csv
//	GET /profs        profs.csv
//	GET /prof_counts  prof_counts.csv
//
// A report with skipped rows is still served; the number of skipped rows is
// reported in the X-Skipped-Rows header.
package server
