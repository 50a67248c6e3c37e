// Package bio composes the display text of the yearbook records.
//
// The rules here are the accumulated house style of the yearbook's senior
// section: how names are printed, how secondary schools and hometowns are
// spelled, and how extracurricular answers are condensed into one line.
// Several rules are order-sensitive string rewrites; they are kept as ordered
// lists and applied front to back.
//
// Composer builds a model.SeniorRecord from a normalized senior submission.
// GroupComposer builds a model.GroupRecord from a group submission. TitleCase
// and FullName are exported for callers that print names on their own.
package bio
