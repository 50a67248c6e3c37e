// Package pipeline computes reports by running a sequence of steps.
//
// Every report computation is a one-shot run: fetch the export, normalize
// the rows, collapse repeated submissions and build the report table. Each
// stage is a Step that reads and extends the shared model.Run. DefaultPipeline
// assembles the steps for a report kind.
//
// Runner builds a fresh pipeline per computation, so no state is shared
// between reports. BatchProcessor computes several reports concurrently with
// errgroup, each with its own login session.
package pipeline
