package cube

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	log "github.com/sirupsen/logrus"

	"github.com/specio/hsicube/encoding"
	"github.com/specio/hsicube/endian"
	"github.com/specio/hsicube/errs"
	"github.com/specio/hsicube/format"
	"github.com/specio/hsicube/layout"
)

// Cube is a hyperspectral data cube.
//
// The exported fields are the open metadata contract: a format-specific
// loader (or the caller) populates them before Initialize or Open is called.
// Shape fields use -1 for "unset"; offset and size fields use 0 for
// "derive from the other fields".
//
// A Cube is not internally synchronized except for the running extrema;
// concurrent mutation must be serialized by the caller. In-place read views
// over a mapped cube are safe for concurrent readers.
type Cube struct {
	// Path is the location of the backing file, empty for an in-memory cube.
	Path string

	// Samples, Lines and Bands describe the shape. -1 means unset.
	Samples int
	Lines   int
	Bands   int

	// Interleave is the physical layout tag, fixed at construction.
	Interleave format.Interleave

	// DataType is the stored element type.
	DataType format.DataType

	// ByteOrder is the stored byte order of the elements. Nil means native.
	ByteOrder endian.EndianEngine

	// FileOffset is the number of bytes to skip before any header.
	FileOffset int64

	// HeaderOffset is the number of header bytes after FileOffset.
	HeaderOffset int64

	// DataOffset is the absolute byte offset of the numeric payload.
	// Derived as FileOffset+HeaderOffset when left zero.
	DataOffset int64

	// DataBytes is the size of the raw numeric payload. Derived from the
	// shape and element size when left zero.
	DataBytes int64

	// Per-band metadata, each of length Bands or empty when unknown.
	Wavelengths []float64
	FWHM        []float64
	BadBands    []int
	BandNames   []string

	// WavelengthUnits is the unit of the Wavelengths values. Inferred from
	// the wavelength range when left unknown.
	WavelengthUnits format.WavelengthUnit

	// ScaleFactor is the divisor converting stored integer samples into
	// physical units in [0, 1]. Defaults by element type when left zero.
	ScaleFactor float64

	SensorType  string
	Description string

	mapping     mmap.MMap
	payload     []byte
	codec       encoding.SampleCodec
	scheme      layout.Scheme
	readonly    bool
	initialized bool

	extremaMu    sync.Mutex
	extremaValid bool
	extremaMin   float64
	extremaMax   float64
}

// Initialize computes the derived geometry, slices the payload out of the
// backing storage and installs the typed view.
//
// Shape and element type are required: missing fields return
// errs.ErrMissingShape or errs.ErrMissingDataType. A declared shape that
// does not fit the backing storage returns errs.ErrShapeMismatch rather
// than silently truncating.
//
// Initialize is idempotent; Open calls it after mapping the file, and the
// factory calls it after allocating an in-memory payload.
func (c *Cube) Initialize() error {
	if c.Samples < 0 || c.Lines < 0 || c.Bands < 0 {
		return fmt.Errorf("%w: %dx%dx%d (lines x samples x bands)",
			errs.ErrMissingShape, c.Lines, c.Samples, c.Bands)
	}
	if c.DataType == 0 {
		return errs.ErrMissingDataType
	}
	if c.ByteOrder == nil {
		c.ByteOrder = endian.Native()
	}

	codec, err := encoding.NewSampleCodec(c.DataType, c.ByteOrder)
	if err != nil {
		return err
	}

	scheme, err := layout.New(c.Interleave, c.Lines, c.Samples, c.Bands)
	if err != nil {
		return err
	}

	want := int64(scheme.Elements()) * int64(codec.ItemSize())
	if c.DataBytes == 0 {
		c.DataBytes = want
	} else if c.DataBytes != want {
		return fmt.Errorf("%w: declared %d bytes, shape needs %d",
			errs.ErrShapeMismatch, c.DataBytes, want)
	}

	// Derive the payload offset before slicing, so a header declared only
	// through FileOffset/HeaderOffset is honored.
	if c.DataOffset == 0 {
		c.DataOffset = c.FileOffset + c.HeaderOffset
	}

	switch {
	case c.mapping != nil:
		if c.DataOffset+c.DataBytes > int64(len(c.mapping)) {
			return fmt.Errorf("%w: payload [%d, %d) exceeds file size %d",
				errs.ErrShapeMismatch, c.DataOffset, c.DataOffset+c.DataBytes, len(c.mapping))
		}
		c.payload = c.mapping[c.DataOffset : c.DataOffset+c.DataBytes]
		c.readonly = true
	case c.payload != nil:
		if int64(len(c.payload)) != c.DataBytes {
			return fmt.Errorf("%w: payload holds %d bytes, shape needs %d",
				errs.ErrShapeMismatch, len(c.payload), c.DataBytes)
		}
	default:
		return errs.ErrNoBackingStore
	}

	c.codec = codec
	c.scheme = scheme
	c.VerifyAttributes()
	c.initialized = true

	return nil
}

// VerifyAttributes fills in defaults for optional metadata. It never
// overwrites an explicitly set value:
//
//   - ScaleFactor defaults by element type (integer types get the
//     conventional reflectance divisor, floats get 1.0)
//   - BadBands defaults to all-usable
//   - WavelengthUnits is inferred from the wavelength range when
//     wavelengths are present but units are not
//   - DataOffset is derived from FileOffset+HeaderOffset
func (c *Cube) VerifyAttributes() {
	if c.ScaleFactor == 0 {
		c.ScaleFactor = c.DataType.DefaultScaleFactor()
		log.Debugf("cube: defaulted scale factor to %g for %s samples", c.ScaleFactor, c.DataType)
	}

	if len(c.BadBands) == 0 && c.Bands > 0 {
		c.BadBands = make([]int, c.Bands)
		for i := range c.BadBands {
			c.BadBands[i] = 1
		}
	}

	if c.WavelengthUnits == format.UnitUnknown && len(c.Wavelengths) > 0 {
		// Sensors report band centers in either nm or um; a cube whose
		// longest wavelength is under 100 cannot be nanometers.
		if c.Wavelengths[len(c.Wavelengths)-1] >= 100 {
			c.WavelengthUnits = format.UnitNanometer
		} else {
			c.WavelengthUnits = format.UnitMicrometer
		}
		log.Debugf("cube: inferred wavelength units %s", c.WavelengthUnits)
	}

	if c.DataOffset == 0 {
		c.DataOffset = c.FileOffset + c.HeaderOffset
	}
}

// Initialized reports whether the typed view has been installed.
func (c *Cube) Initialized() bool {
	return c.initialized
}

// ReadOnly reports whether the cube is backed by a read-only mapping.
func (c *Cube) ReadOnly() bool {
	return c.readonly
}

// ItemSize returns the number of bytes one stored element occupies.
// Returns 0 before Initialize has run.
func (c *Cube) ItemSize() int {
	if !c.initialized {
		return 0
	}

	return c.codec.ItemSize()
}

// Checksum returns the xxHash64 digest of the raw payload bytes, for
// round-trip verification between save and open. Returns 0 before
// Initialize has run.
func (c *Cube) Checksum() uint64 {
	if !c.initialized {
		return 0
	}

	return xxhash.Sum64(c.payload)
}

// UpdateExtrema folds the given values into the running extrema. The
// recorded range only ever expands.
func (c *Cube) UpdateExtrema(values []float64) {
	if len(values) == 0 {
		return
	}

	mn, mx := values[0], values[0]
	for _, v := range values[1:] {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}

	c.extremaMu.Lock()
	defer c.extremaMu.Unlock()

	if !c.extremaValid {
		c.extremaMin, c.extremaMax = mn, mx
		c.extremaValid = true
		return
	}
	if mn < c.extremaMin {
		c.extremaMin = mn
	}
	if mx > c.extremaMax {
		c.extremaMax = mx
	}
}

// Extrema returns the running (min, max) over all values observed through
// copying read operations. ok is false before any copying read.
func (c *Cube) Extrema() (minVal, maxVal float64, ok bool) {
	c.extremaMu.Lock()
	defer c.extremaMu.Unlock()

	return c.extremaMin, c.extremaMax, c.extremaValid
}

// Close releases the memory mapping, if any. The cube becomes unusable
// until reopened.
func (c *Cube) Close() error {
	if c.mapping == nil {
		return nil
	}

	err := c.mapping.Unmap()
	c.mapping = nil
	c.payload = nil
	c.readonly = false
	c.initialized = false

	if err != nil {
		return fmt.Errorf("failed to unmap %s: %w", c.Path, err)
	}

	return nil
}

// String returns a one-line description of the cube geometry.
func (c *Cube) String() string {
	return fmt.Sprintf("cube %s: %dx%dx%d %s %s, scale=%g",
		c.Path, c.Lines, c.Samples, c.Bands, c.Interleave, c.DataType, c.ScaleFactor)
}
