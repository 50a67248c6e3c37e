// Package schema maps logical field roles to the column names of a remote
// form export.
//
// The remote forms are edited between yearbook cycles, so the column list is
// read from each export's header once and resolved into explicit structs
// (Form, SeniorColumns, GroupColumns, ProfessorColumns). Row processing then
// looks fields up by the resolved names instead of matching patterns on every
// row. A column the pipeline depends on that is missing from the header is
// reported as a *model.SchemaMismatchError naming the field.
package schema
