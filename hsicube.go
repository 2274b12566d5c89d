// Package hsicube implements a storage engine for hyperspectral data cubes:
// large rectangular rasters of lines × samples × bands samples stored in one
// of three band-interleaved physical layouts.
//
// Cubes are backed by a read-only memory mapping of the raw payload file (or
// an in-memory buffer for freshly synthesized cubes), with endian-aware
// typed element access, per-band and per-pixel random access, wavelength
// driven band selection and running extrema tracking.
//
// # Core Features
//
//   - Three physical interleaves: BIL, BIP and BSQ, behind one layout-agnostic API
//   - Memory-mapped read path with deterministic release on Close
//   - Endian-aware typed views over 8/16/32/64-bit integer and 32/64-bit float samples
//   - Non-owning in-place views and copying accessors with bad-band masking
//   - Wavelength utilities: unit normalization, band selection, display band guessing
//   - Running (min, max) extrema over all values observed through copying reads
//   - xxHash64 payload checksums and compressed payload archives (Zstd, S2, LZ4)
//
// # Basic Usage
//
// Synthesizing an in-memory cube:
//
//	import "github.com/specio/hsicube"
//
//	c, _ := hsicube.Create(format.InterleaveBIP, 100, 100, 224)
//	_ = c.SetPixel(0, 0, 0, 4200)
//
// Opening an existing payload file (metadata comes from an out-of-band
// header, supplied by a Loader or set directly):
//
//	c, _ := hsicube.New(format.InterleaveBSQ, "/data/scene.raw")
//	c.Lines, c.Samples, c.Bands = 512, 614, 224
//	c.DataType = format.Int16
//	if err := c.Open(""); err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	band, _ := c.GetBand(10)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the cube
// package. For fine-grained control (views, compressed archives, flat-index
// addressing) use the cube package directly; layout, encoding and endian
// hold the underlying address translation and element codecs.
package hsicube

import (
	"fmt"

	"github.com/specio/hsicube/cube"
	"github.com/specio/hsicube/format"
)

// Cube is the central data cube type; see the cube package for the full API.
type Cube = cube.Cube

// CreateOption configures cubes built by Create and CreateLike.
type CreateOption = cube.CreateOption

// Loader is the contract a format-specific metadata loader fulfills: given
// a path it recognizes, it produces a Cube with shape, element type,
// offsets and optional per-band metadata populated, ready for Open.
//
// Format discovery (trying loaders in priority order) is the caller's
// concern; this package consumes only the produced contract.
type Loader interface {
	// Identify reports whether the loader recognizes the file at path.
	Identify(path string) bool

	// Load produces a populated, unopened Cube for the file at path.
	Load(path string) (*cube.Cube, error)
}

// New creates an empty cube tagged with the given interleave, optionally
// bound to a path. Metadata must be populated before Open.
func New(interleave format.Interleave, path string) (*cube.Cube, error) {
	return cube.New(interleave, path)
}

// Create builds a zero-filled in-memory cube of the given interleave and
// shape. Defaults to 16-bit signed integer samples in native byte order.
//
// Example:
//
//	c, err := hsicube.Create(format.InterleaveBIL, 512, 614, 224,
//	    cube.WithDataType(format.Float32),
//	    cube.WithBigEndian(),
//	)
func Create(interleave format.Interleave, lines, samples, bands int, opts ...CreateOption) (*cube.Cube, error) {
	return cube.Create(interleave, lines, samples, bands, opts...)
}

// CreateLike builds a fresh zero-filled in-memory cube with the same shape,
// element type, byte order and per-band metadata as an existing cube.
func CreateLike(other *cube.Cube, opts ...CreateOption) (*cube.Cube, error) {
	return cube.CreateLike(other, opts...)
}

// OpenWith loads and opens the cube at path using the given metadata
// loader. The loader must recognize the file; discovery across multiple
// candidate loaders is the caller's concern.
func OpenWith(path string, loader Loader) (*cube.Cube, error) {
	if loader == nil {
		return nil, fmt.Errorf("no loader provided for %s", path)
	}
	if !loader.Identify(path) {
		return nil, fmt.Errorf("loader does not recognize %s", path)
	}

	c, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata for %s: %w", path, err)
	}

	if err := c.Open(path); err != nil {
		return nil, err
	}

	return c, nil
}
