// Package errs defines the sentinel errors returned by the hsicube packages.
//
// Callers can match them with errors.Is even when they are wrapped with
// additional context:
//
//	if errors.Is(err, errs.ErrIndexOutOfRange) {
//	    // handle out-of-bounds access
//	}
package errs

import "errors"

var (
	// ErrUnsupportedInterleave is returned when a cube is requested with an
	// interleave tag other than BIL, BIP or BSQ.
	ErrUnsupportedInterleave = errors.New("unsupported interleave format")

	// ErrUnsupportedDataType is returned when an element type tag is unknown
	// or has no stored representation.
	ErrUnsupportedDataType = errors.New("unsupported data type")

	// ErrMissingShape is returned by Initialize when samples, lines or bands
	// have not been populated.
	ErrMissingShape = errors.New("cube shape not fully specified")

	// ErrMissingDataType is returned by Initialize when no element type has
	// been populated.
	ErrMissingDataType = errors.New("cube data type not specified")

	// ErrNoPath is returned by Open and Save when no file path is resolvable.
	ErrNoPath = errors.New("no file path specified")

	// ErrNotLocalFile is returned by Open for non-local URLs; only local
	// files can be memory mapped.
	ErrNotLocalFile = errors.New("only local file paths can be memory mapped")

	// ErrShapeMismatch is returned when the declared shape and offsets do not
	// fit inside the backing file.
	ErrShapeMismatch = errors.New("declared shape does not match file size")

	// ErrIndexOutOfRange is returned by accessors for a line, sample or band
	// outside the declared shape.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotInitialized is returned by accessors before Initialize has run.
	ErrNotInitialized = errors.New("cube not initialized")

	// ErrNoBackingStore is returned by Initialize when the cube has neither a
	// mapped file nor an in-memory payload.
	ErrNoBackingStore = errors.New("cube has no backing storage")

	// ErrReadOnly is returned by write accessors on a memory-mapped cube.
	ErrReadOnly = errors.New("cube is memory mapped read-only")
)
