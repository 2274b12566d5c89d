package compress

import "github.com/klauspost/compress/s2"

// S2Compressor provides S2 compression for cube payload archives.
//
// S2 sits between LZ4 and Zstd: better ratios than LZ4 on the repetitive
// runs typical of integer reflectance payloads, with decompression fast
// enough that a loaded archive is usable almost as quickly as a raw read.
// The block format carries the decompressed length, so no adaptive buffer
// sizing is needed on the way back.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses a raw payload using the S2 block format.
//
// S2 is stateless per call, so the zero-value compressor is safe for
// concurrent use without pooling.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress restores a raw payload from its S2 block form. The output
// buffer is sized from the length header in the block; corrupt input
// returns an error rather than a truncated payload.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
