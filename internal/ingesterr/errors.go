// Package ingesterr defines the typed errors surfaced by the ingestion
// pipeline. Row-level problems are counted and logged rather than raised;
// only structurally unusable inputs and storage failures become errors.
package ingesterr

import "fmt"

// ExtractionError means no usable sheet or table was found, or zero valid
// rows remained after filtering. It aborts the whole import.
type ExtractionError struct {
	Filename string
	Reason   string
}

func (e *ExtractionError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("extraction failed for %s: %s", e.Filename, e.Reason)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

// ClassificationGap means the date or amount role could not be resolved even
// after the content-based fallback. It is not a hard failure: the pipeline
// logs it and drops affected rows individually downstream.
type ClassificationGap struct {
	MissingRole string
	Columns     []string
}

func (e *ClassificationGap) Error() string {
	return fmt.Sprintf("no column could be classified as %s among %v", e.MissingRole, e.Columns)
}

// PersistenceError wraps an opaque failure from the storage collaborator.
// The caller keeps the full candidate list so the import can be retried
// without re-parsing the source file.
type PersistenceError struct {
	Persisted int
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed after %d records: %v", e.Persisted, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
