package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrInvalidURL     = errors.New("invalid URL")
	ErrNoSource       = errors.New("no feed source configured")
	ErrRunStopped     = errors.New("harvest run has been stopped")
	ErrEmptyDocument  = errors.New("empty document")
	ErrUnknownMetric  = errors.New("unknown engagement metric")
	ErrUnknownStorage = errors.New("unknown storage backend")
)

// NavigationError wraps a navigation failure after retry exhaustion. It
// is distinguishable from partial or zero extraction results, which are
// not errors at all.
type NavigationError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed for %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// SourceError wraps failures reading from the rendering collaborator
// (item snapshot, count read, reveal action).
type SourceError struct {
	Op  string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("feed source error during %s: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// StorageError wraps errors that occur during storage/export.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PipelineError wraps errors that occur in the record pipeline.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error at stage %q: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
