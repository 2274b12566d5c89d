package compress

import (
	"bytes"
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specio/hsicube/format"
)

// samplePayload builds a little-endian int16 payload resembling a small
// calibrated radiance cube, with smooth gradients that compress well.
func samplePayload(n int) []byte {
	buf := make([]byte, 0, n*2)
	for i := range n {
		v := int16(1000 + i%500)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
	}

	return buf
}

func TestCodecRoundTrip(t *testing.T) {
	payload := samplePayload(4096)

	codecs := map[string]Codec{
		"noop": NewNoOpCompressor(),
		"zstd": NewZstdCompressor(),
		"s2":   NewS2Compressor(),
		"lz4":  NewLZ4Compressor(),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.NotEmpty(t, compressed)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, decompressed))
		})
	}
}

func TestCodecEmptyInput(t *testing.T) {
	codecs := []Codec{
		NewZstdCompressor(),
		NewS2Compressor(),
		NewLZ4Compressor(),
	}

	for _, codec := range codecs {
		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, compressed)

		decompressed, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, decompressed)
	}
}

func TestCodecInvalidData(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04}

	_, err := NewZstdCompressor().Decompress(garbage)
	require.Error(t, err)

	_, err = NewS2Compressor().Decompress(garbage)
	require.Error(t, err)
}

func TestNoOpPassthrough(t *testing.T) {
	payload := samplePayload(16)
	codec := NewNoOpCompressor()

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0xff))
	require.Error(t, err)
}

func TestCodecConcurrentUse(t *testing.T) {
	payload := samplePayload(2048)
	codecs := []Codec{
		NewZstdCompressor(),
		NewS2Compressor(),
		NewLZ4Compressor(),
	}

	var wg sync.WaitGroup
	for _, codec := range codecs {
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 16 {
					compressed, err := codec.Compress(payload)
					require.NoError(t, err)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.True(t, bytes.Equal(payload, decompressed))
				}
			}()
		}
	}
	wg.Wait()
}

func TestStats(t *testing.T) {
	stats := Stats{
		Algorithm:      format.CompressionZstd,
		OriginalSize:   1000,
		CompressedSize: 250,
	}
	require.InDelta(t, 0.25, stats.Ratio(), 1e-9)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	empty := Stats{}
	require.Zero(t, empty.Ratio())
}
