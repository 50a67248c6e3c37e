// Package normalize turns raw export rows into model.Submission values and
// collapses repeated submissions.
//
// Normalizer fills missing answers with "", trims values, drops gate columns
// and applies the optional start-date cutoff. Deduplicate keeps the latest
// submission per identity key.
package normalize
