// Package model defines the data structures shared by the bioform pipeline.
//
// This package contains the following main types:
//   - Submission: one normalized row of a form export (field name to string value)
//   - Export: the header and rows of one remote form export
//   - SeniorRecord, GroupRecord, ProfessorRecord: the display records of each report
//   - Table: a rendered record set ready for CSV serialization
//   - Run: the accumulated state of one report computation
//
// Models live in their own package so that fetch, normalize, bio, report and
// pipeline can share them without import cycles. None of these values are
// persisted; each is owned by the single report computation that created it.
package model
