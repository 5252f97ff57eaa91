// Package errs defines the sentinel errors returned by placecloud packages.
//
// Callers branch on the sentinels with errors.Is. The typed errors in this
// package carry the offending value, index or offset and unwrap to their
// sentinel, so errors.As can recover the details when a caller wants to
// handle a failure (for example, substituting a color for a bad index).
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedBuffer is returned when an event buffer does not match the
	// size implied by its length header, or the header itself is missing.
	ErrMalformedBuffer = errors.New("malformed event buffer")
	// ErrInvalidColorIndex is returned when a color index falls outside the palette.
	ErrInvalidColorIndex = errors.New("invalid color index")
	// ErrInvalidChunkCount is returned when a non-positive chunk count is requested.
	ErrInvalidChunkCount = errors.New("invalid chunk count")
	// ErrInvalidTimeScale is returned when the time scale is not a finite positive number.
	ErrInvalidTimeScale = errors.New("invalid time scale")
	// ErrInvalidConfig is returned when a configuration file fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrDatasetNotFound is returned when no archive exists for a dataset name.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrUnsupportedCompression is returned for an unknown archive compression type.
	ErrUnsupportedCompression = errors.New("unsupported compression")
)

// BufferError describes why an event buffer was rejected.
type BufferError struct {
	Reason   string // short description of the failed check
	Declared uint32 // event count read from the header (0 if the header is missing)
	Expected int    // byte size implied by Declared (-1 if it cannot be computed)
	Actual   int    // actual buffer size in bytes
}

func (e *BufferError) Error() string {
	return fmt.Sprintf("%s: %s (declared=%d expected=%d actual=%d)",
		ErrMalformedBuffer, e.Reason, e.Declared, e.Expected, e.Actual)
}

func (e *BufferError) Unwrap() error { return ErrMalformedBuffer }

// ColorIndexError reports the first event whose color index is out of range.
type ColorIndexError struct {
	Event int   // event index in the decoded buffers
	Value uint8 // offending color index
	Max   int   // largest valid color index
}

func (e *ColorIndexError) Error() string {
	return fmt.Sprintf("%s: event %d has index %d, want 0..%d",
		ErrInvalidColorIndex, e.Event, e.Value, e.Max)
}

func (e *ColorIndexError) Unwrap() error { return ErrInvalidColorIndex }

// ChunkCountError reports a rejected chunk count.
type ChunkCountError struct {
	Count int
}

func (e *ChunkCountError) Error() string {
	return fmt.Sprintf("%s: %d, must be at least 1", ErrInvalidChunkCount, e.Count)
}

func (e *ChunkCountError) Unwrap() error { return ErrInvalidChunkCount }
