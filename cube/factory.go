package cube

import (
	"fmt"

	"github.com/specio/hsicube/endian"
	"github.com/specio/hsicube/errs"
	"github.com/specio/hsicube/format"
	"github.com/specio/hsicube/internal/options"
)

// CreateOption configures a cube built by Create or CreateLike.
type CreateOption = options.Option[*Cube]

// WithDataType sets the stored element type.
func WithDataType(dtype format.DataType) CreateOption {
	return options.New(func(c *Cube) error {
		if dtype.Size() == 0 {
			return fmt.Errorf("%w: 0x%x", errs.ErrUnsupportedDataType, uint8(dtype))
		}
		c.DataType = dtype

		return nil
	})
}

// WithLittleEndian stores elements in little-endian byte order.
func WithLittleEndian() CreateOption {
	return options.NoError(func(c *Cube) {
		c.ByteOrder = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian stores elements in big-endian byte order.
func WithBigEndian() CreateOption {
	return options.NoError(func(c *Cube) {
		c.ByteOrder = endian.GetBigEndianEngine()
	})
}

// WithScaleFactor sets the divisor converting stored samples to physical
// units.
func WithScaleFactor(scale float64) CreateOption {
	return options.New(func(c *Cube) error {
		if scale <= 0 {
			return fmt.Errorf("scale factor must be positive, got %g", scale)
		}
		c.ScaleFactor = scale

		return nil
	})
}

// WithDescription sets a free-form description of the cube contents.
func WithDescription(desc string) CreateOption {
	return options.NoError(func(c *Cube) {
		c.Description = desc
	})
}

// New creates an empty cube tagged with the given interleave, optionally
// bound to a path. The shape is unset; metadata must be populated before
// Open or Initialize.
func New(interleave format.Interleave, path string) (*Cube, error) {
	if !interleave.Valid() {
		return nil, fmt.Errorf("%w: 0x%x", errs.ErrUnsupportedInterleave, uint8(interleave))
	}

	return &Cube{
		Path:       path,
		Samples:    -1,
		Lines:      -1,
		Bands:      -1,
		Interleave: interleave,
		ByteOrder:  endian.Native(),
	}, nil
}

// Create builds an in-memory cube of the given interleave and shape with a
// zero-filled payload, then runs the same Initialize path as the file-backed
// constructor so derived sizes and defaults are consistent with the read
// path.
//
// Defaults: 16-bit signed integer elements, native byte order, and the
// conventional integer scale factor. Options override them.
func Create(interleave format.Interleave, lines, samples, bands int, opts ...CreateOption) (*Cube, error) {
	if lines < 0 || samples < 0 || bands < 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", errs.ErrMissingShape, lines, samples, bands)
	}

	c, err := New(interleave, "")
	if err != nil {
		return nil, err
	}

	c.Lines = lines
	c.Samples = samples
	c.Bands = bands
	c.DataType = format.Int16

	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	c.payload = make([]byte, lines*samples*bands*c.DataType.Size())

	if err := c.Initialize(); err != nil {
		return nil, err
	}

	return c, nil
}

// CreateLike builds a fresh in-memory cube with the same shape, element
// type, byte order and per-band metadata as an existing cube, backed by a
// zero-filled payload. Used to synthesize processed outputs band-compatible
// with their source. Options override the inherited settings.
func CreateLike(other *Cube, opts ...CreateOption) (*Cube, error) {
	c, err := New(other.Interleave, "")
	if err != nil {
		return nil, err
	}

	c.Lines = other.Lines
	c.Samples = other.Samples
	c.Bands = other.Bands
	c.DataType = other.DataType
	c.ByteOrder = other.ByteOrder
	c.ScaleFactor = other.ScaleFactor
	c.WavelengthUnits = other.WavelengthUnits
	c.SensorType = other.SensorType

	c.Wavelengths = append([]float64(nil), other.Wavelengths...)
	c.FWHM = append([]float64(nil), other.FWHM...)
	c.BadBands = append([]int(nil), other.BadBands...)
	c.BandNames = append([]string(nil), other.BandNames...)

	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	if c.Lines < 0 || c.Samples < 0 || c.Bands < 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", errs.ErrMissingShape, c.Lines, c.Samples, c.Bands)
	}

	c.payload = make([]byte, c.Lines*c.Samples*c.Bands*c.DataType.Size())

	if err := c.Initialize(); err != nil {
		return nil, err
	}

	return c, nil
}
