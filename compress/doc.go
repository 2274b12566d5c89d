// Package compress provides compression and decompression codecs for raw
// cube payloads.
//
// The native cube format stores payloads raw and uncompressed so that they
// can be memory mapped and addressed in place. Compression only enters the
// picture at the edges: exporting a cube payload to a compressed archive
// file and loading one back (see the cube package's Export and
// LoadCompressed). Per-band metadata always stays out-of-band and is never
// compressed here.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): pass-through, for symmetry with the
//     raw on-disk format.
//   - Zstd (format.CompressionZstd): best ratio, for archival of large
//     cubes. Integer reflectance payloads typically shrink 2-4x.
//   - S2 (format.CompressionS2): balanced speed and ratio.
//   - LZ4 (format.CompressionLZ4): fastest decompression, moderate ratio.
//
// Hyperspectral payloads compress well when the scene has spatial
// coherence; fully calibrated floating-point cubes compress poorly and may
// be better exported with CompressionNone.
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use; internal encoder
// and decoder state is pooled per call.
package compress
