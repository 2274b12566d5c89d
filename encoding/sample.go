// Package encoding implements the typed view over a raw cube payload.
//
// A cube payload is a byte slice holding densely packed numeric elements of
// one primitive type in one stored byte order. SampleCodec decodes those
// elements to float64 (and encodes float64 back) at arbitrary element
// indices, so the cube package can expose layout-addressed numeric access
// without copying the payload.
package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/specio/hsicube/endian"
	"github.com/specio/hsicube/errs"
	"github.com/specio/hsicube/format"
)

// SampleCodec reads and writes single stored elements of one data type,
// honoring the stored byte order.
//
// The codec is returned by value: it is immutable and stateless, a 24-byte
// struct that can be freely copied and shared between goroutines.
type SampleCodec struct {
	dtype    format.DataType
	engine   endian.EndianEngine
	itemSize int
}

// NewSampleCodec creates a codec for the given element type and byte order.
//
// Returns errs.ErrUnsupportedDataType for an unknown type tag.
func NewSampleCodec(dtype format.DataType, engine endian.EndianEngine) (SampleCodec, error) {
	size := dtype.Size()
	if size == 0 {
		return SampleCodec{}, fmt.Errorf("%w: 0x%x", errs.ErrUnsupportedDataType, uint8(dtype))
	}
	if engine == nil {
		engine = endian.Native()
	}

	return SampleCodec{
		dtype:    dtype,
		engine:   engine,
		itemSize: size,
	}, nil
}

// DataType returns the element type the codec decodes.
func (c SampleCodec) DataType() format.DataType {
	return c.dtype
}

// Engine returns the endian engine for byte order operations.
func (c SampleCodec) Engine() endian.EndianEngine {
	return c.engine
}

// ItemSize returns the number of bytes one stored element occupies.
func (c SampleCodec) ItemSize() int {
	return c.itemSize
}

// At decodes the element at the given index, widening it to float64.
//
// Signed integer types are sign-extended; unsigned types are zero-extended;
// float types are decoded per IEEE 754. The caller must ensure
// index*ItemSize()+ItemSize() <= len(buf).
func (c SampleCodec) At(buf []byte, index int) float64 {
	off := index * c.itemSize

	switch c.dtype {
	case format.Int8:
		return float64(int8(buf[off]))
	case format.Uint8:
		return float64(buf[off])
	case format.Int16:
		return float64(int16(c.engine.Uint16(buf[off : off+2])))
	case format.Uint16:
		return float64(c.engine.Uint16(buf[off : off+2]))
	case format.Int32:
		return float64(int32(c.engine.Uint32(buf[off : off+4])))
	case format.Uint32:
		return float64(c.engine.Uint32(buf[off : off+4]))
	case format.Int64:
		return float64(int64(c.engine.Uint64(buf[off : off+8])))
	case format.Uint64:
		return float64(c.engine.Uint64(buf[off : off+8]))
	case format.Float32:
		return float64(math.Float32frombits(c.engine.Uint32(buf[off : off+4])))
	default: // format.Float64
		return math.Float64frombits(c.engine.Uint64(buf[off : off+8]))
	}
}

// Put encodes val into the element at the given index.
//
// Integer types truncate the fractional part; out-of-range values wrap per
// Go's integer conversion rules. The caller must ensure the buffer covers
// the element.
func (c SampleCodec) Put(buf []byte, index int, val float64) {
	off := index * c.itemSize

	switch c.dtype {
	case format.Int8:
		buf[off] = byte(int8(val))
	case format.Uint8:
		buf[off] = byte(uint8(val))
	case format.Int16:
		c.engine.PutUint16(buf[off:off+2], uint16(int16(val)))
	case format.Uint16:
		c.engine.PutUint16(buf[off:off+2], uint16(val))
	case format.Int32:
		c.engine.PutUint32(buf[off:off+4], uint32(int32(val)))
	case format.Uint32:
		c.engine.PutUint32(buf[off:off+4], uint32(val))
	case format.Int64:
		c.engine.PutUint64(buf[off:off+8], uint64(int64(val)))
	case format.Uint64:
		c.engine.PutUint64(buf[off:off+8], uint64(val))
	case format.Float32:
		c.engine.PutUint32(buf[off:off+4], math.Float32bits(float32(val)))
	default: // format.Float64
		c.engine.PutUint64(buf[off:off+8], math.Float64bits(val))
	}
}

// All returns an iterator over the first count elements of the payload.
//
// The sequence is empty when the buffer is too short for count elements.
//
// Example:
//
//	for val := range codec.All(payload, scheme.Elements()) {
//	    sum += val
//	}
func (c SampleCodec) All(buf []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 || len(buf) < count*c.itemSize {
			return
		}

		for i := range count {
			if !yield(c.At(buf, i)) {
				return
			}
		}
	}
}
