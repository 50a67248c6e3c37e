package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownReport is returned when a report name does not match any ReportKind.
var ErrUnknownReport = errors.New("unknown report")

// ReportKind identifies one of the CSV reports the system can produce.
type ReportKind int

const (
	// ReportSeniors is the senior biography report.
	ReportSeniors ReportKind = iota

	// ReportGroups is the student-group report.
	ReportGroups

	// ReportProfessors is the professor directory derived from senior submissions.
	ReportProfessors

	// ReportProfessorCounts is the by-surname professor frequency ranking.
	ReportProfessorCounts
)

// AllReports lists every report kind in a stable order.
var AllReports = []ReportKind{
	ReportSeniors,
	ReportGroups,
	ReportProfessors,
	ReportProfessorCounts,
}

// String returns the report name used in routes and on the command line.
func (k ReportKind) String() string {
	switch k {
	case ReportSeniors:
		return "seniors"
	case ReportGroups:
		return "groups"
	case ReportProfessors:
		return "profs"
	case ReportProfessorCounts:
		return "prof_counts"
	default:
		return "unknown"
	}
}

// FileName returns the attachment file name for the report.
func (k ReportKind) FileName() string {
	switch k {
	case ReportSeniors:
		return "bioforms.csv"
	case ReportGroups:
		return "groups.csv"
	case ReportProfessors:
		return "profs.csv"
	case ReportProfessorCounts:
		return "prof_counts.csv"
	default:
		return "report.csv"
	}
}

// Form returns the form the report is computed from.
// The professor reports branch off the senior bioform.
func (k ReportKind) Form() FormKind {
	if k == ReportGroups {
		return FormGroup
	}
	return FormSenior
}

// ParseReportKind converts a report name into a ReportKind.
// Matching is case-insensitive and accepts "prof-counts" as an alias.
func ParseReportKind(name string) (ReportKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "seniors", "senior":
		return ReportSeniors, nil
	case "groups", "group":
		return ReportGroups, nil
	case "profs", "professors":
		return ReportProfessors, nil
	case "prof_counts", "prof-counts":
		return ReportProfessorCounts, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownReport, name)
	}
}

// FormKind identifies one of the two remote submission forms.
type FormKind int

const (
	// FormSenior is the senior bioform.
	FormSenior FormKind = iota

	// FormGroup is the student-group bioform.
	FormGroup
)

// String returns the form name.
func (f FormKind) String() string {
	switch f {
	case FormSenior:
		return "senior"
	case FormGroup:
		return "group"
	default:
		return "unknown"
	}
}
