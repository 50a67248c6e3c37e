// Package report renders finished report runs.
//
// CSVWriter serializes a model.Table with the header and index column
// conventions of each report. The summary writers describe a batch of runs
// for the operator:
//   - SimpleWriter: plain text for the terminal
//   - MarkdownWriter: a Markdown document for sharing with the editors
//   - JSONWriter: structured output for scripts
//
// Summary writers implement the Writer interface and can be combined with
// MultiWriter.
package report
