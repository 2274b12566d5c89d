package compress

// ZstdCompressor provides Zstandard compression for cube payload archives.
//
// Zstd favors ratio over speed, which suits the export use case: archival
// copies of large cubes are written once and read rarely. The concrete
// implementation depends on the build: gozstd (cgo) when cgo is available,
// the pure-Go klauspost zstd otherwise. Both produce interoperable frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
