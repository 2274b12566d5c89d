// Package layout implements the address translation for the three physical
// interleave orders of a hyperspectral cube payload.
//
// A cube payload is a dense sequence of lines × samples × bands elements
// whose memory order depends on the interleave:
//
//	BIP (band-interleaved-by-pixel):  (lines, samples, bands)
//	BIL (band-interleaved-by-line):   (lines, bands, samples)
//	BSQ (band-sequential):            (bands, lines, samples)
//
// A Scheme converts between (line, sample, band) coordinates and flat
// element indices for one of these orders. It is pure arithmetic with no
// I/O; the cube package layers typed storage access on top of it.
package layout

import (
	"fmt"

	"github.com/specio/hsicube/errs"
	"github.com/specio/hsicube/format"
)

// Scheme resolves (line, sample, band) coordinates to flat element indices
// for one interleave order. The zero value is not usable; construct with New.
//
// Scheme is a small immutable value and is safe for concurrent use.
type Scheme struct {
	interleave format.Interleave
	lines      int
	samples    int
	bands      int
}

// New creates a Scheme for the given interleave tag and shape.
//
// Returns errs.ErrUnsupportedInterleave for an unknown tag and an error for
// negative dimensions.
func New(interleave format.Interleave, lines, samples, bands int) (Scheme, error) {
	if !interleave.Valid() {
		return Scheme{}, fmt.Errorf("%w: 0x%x", errs.ErrUnsupportedInterleave, uint8(interleave))
	}
	if lines < 0 || samples < 0 || bands < 0 {
		return Scheme{}, fmt.Errorf("%w: %dx%dx%d", errs.ErrMissingShape, lines, samples, bands)
	}

	return Scheme{
		interleave: interleave,
		lines:      lines,
		samples:    samples,
		bands:      bands,
	}, nil
}

// Interleave returns the interleave tag the scheme addresses.
func (s Scheme) Interleave() format.Interleave {
	return s.interleave
}

// Lines returns the number of lines in the shape.
func (s Scheme) Lines() int { return s.lines }

// Samples returns the number of samples per line.
func (s Scheme) Samples() int { return s.samples }

// Bands returns the number of spectral bands.
func (s Scheme) Bands() int { return s.bands }

// Elements returns the total number of elements in the payload.
func (s Scheme) Elements() int {
	return s.lines * s.samples * s.bands
}

// Contains reports whether the coordinates fall inside the shape.
func (s Scheme) Contains(line, sample, band int) bool {
	return line >= 0 && line < s.lines &&
		sample >= 0 && sample < s.samples &&
		band >= 0 && band < s.bands
}

// FlatOffset converts (line, sample, band) to a flat element index.
//
// The caller must ensure the coordinates are in bounds; Contains checks.
func (s Scheme) FlatOffset(line, sample, band int) int {
	switch s.interleave {
	case format.InterleaveBIP:
		return line*s.bands*s.samples + sample*s.bands + band
	case format.InterleaveBIL:
		return line*s.bands*s.samples + band*s.samples + sample
	default: // format.InterleaveBSQ
		return band*s.lines*s.samples + line*s.samples + sample
	}
}

// Location converts a flat element index back to (line, sample, band).
// It is the exact algebraic inverse of FlatOffset for any in-bounds index.
func (s Scheme) Location(pos int) (line, sample, band int) {
	switch s.interleave {
	case format.InterleaveBIP:
		line = pos / (s.bands * s.samples)
		rem := pos % (s.bands * s.samples)
		sample = rem / s.bands
		band = rem % s.bands
	case format.InterleaveBIL:
		line = pos / (s.bands * s.samples)
		rem := pos % (s.bands * s.samples)
		band = rem / s.samples
		sample = rem % s.samples
	default: // format.InterleaveBSQ
		band = pos / (s.lines * s.samples)
		rem := pos % (s.lines * s.samples)
		line = rem / s.samples
		sample = rem % s.samples
	}

	return line, sample, band
}

// BandBoundary returns the distance, in elements of a fully flattened
// traversal, between two samples at the same (line, sample) in adjacent
// bands. Callers that walk the flat payload directly use this instead of
// coordinate indexing.
func (s Scheme) BandBoundary() int {
	switch s.interleave {
	case format.InterleaveBIP:
		return 1
	case format.InterleaveBIL:
		return s.samples
	default: // format.InterleaveBSQ
		return s.lines * s.samples
	}
}
