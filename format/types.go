// Package format defines the closed sets of type tags used across the
// hsicube packages: physical interleave layouts, element data types,
// wavelength units and compression algorithms.
package format

import (
	"fmt"
	"strings"

	"github.com/specio/hsicube/errs"
)

type (
	Interleave      uint8
	DataType        uint8
	WavelengthUnit  uint8
	CompressionType uint8
)

const (
	InterleaveBIL Interleave = 0x1 // InterleaveBIL is band-interleaved-by-line: (lines, bands, samples).
	InterleaveBIP Interleave = 0x2 // InterleaveBIP is band-interleaved-by-pixel: (lines, samples, bands).
	InterleaveBSQ Interleave = 0x3 // InterleaveBSQ is band-sequential: (bands, lines, samples).

	Int8    DataType = 0x1
	Uint8   DataType = 0x2
	Int16   DataType = 0x3
	Uint16  DataType = 0x4
	Int32   DataType = 0x5
	Uint32  DataType = 0x6
	Int64   DataType = 0x7
	Uint64  DataType = 0x8
	Float32 DataType = 0x9
	Float64 DataType = 0xA

	UnitUnknown    WavelengthUnit = 0x0 // UnitUnknown means the cube has no recorded wavelength unit.
	UnitNanometer  WavelengthUnit = 0x1
	UnitMicrometer WavelengthUnit = 0x2

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// DefaultIntegerScaleFactor is the divisor that converts stored integer
// samples into reflectance values in [0, 1] when the metadata does not
// record one.
const DefaultIntegerScaleFactor = 10000.0

// ParseInterleave parses an interleave name ("bil", "bip" or "bsq",
// case-insensitive) into its tag.
func ParseInterleave(s string) (Interleave, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bil":
		return InterleaveBIL, nil
	case "bip":
		return InterleaveBIP, nil
	case "bsq":
		return InterleaveBSQ, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedInterleave, s)
	}
}

// Valid reports whether the tag is one of the three supported interleaves.
func (i Interleave) Valid() bool {
	return i == InterleaveBIL || i == InterleaveBIP || i == InterleaveBSQ
}

func (i Interleave) String() string {
	switch i {
	case InterleaveBIL:
		return "bil"
	case InterleaveBIP:
		return "bip"
	case InterleaveBSQ:
		return "bsq"
	default:
		return "unknown"
	}
}

// Size returns the number of bytes one stored element occupies.
// Returns 0 for an unknown data type.
func (d DataType) Size() int {
	switch d {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// IsInteger reports whether the data type stores integer samples.
func (d DataType) IsInteger() bool {
	switch d {
	case Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64:
		return true
	default:
		return false
	}
}

// DefaultScaleFactor returns the conventional scale factor for the data
// type: DefaultIntegerScaleFactor for integer samples, 1.0 for floats.
func (d DataType) DefaultScaleFactor() float64 {
	if d.IsInteger() {
		return DefaultIntegerScaleFactor
	}

	return 1.0
}

func (d DataType) String() string {
	switch d {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// enviDataTypes maps the numeric type codes used by ENVI-style headers to
// element types. Codes 6, 7 (complex) and 9 have no supported mapping.
var enviDataTypes = map[int]DataType{
	1:  Uint8,
	2:  Int16,
	3:  Int32,
	4:  Float32,
	5:  Float64,
	12: Uint16,
	13: Uint32,
	14: Int64,
	15: Uint64,
}

// DataTypeFromENVI converts an ENVI header "data type" code into an element
// type tag. Metadata loaders use this when populating a Cube from
// out-of-band header files.
func DataTypeFromENVI(code int) (DataType, error) {
	if dt, ok := enviDataTypes[code]; ok {
		return dt, nil
	}

	return 0, fmt.Errorf("%w: ENVI data type code %d", errs.ErrUnsupportedDataType, code)
}

// ParseWavelengthUnit parses a wavelength unit name. Both the short forms
// ("nm", "um") and the long forms found in header files ("nanometers",
// "micrometers") are accepted. Unrecognized names map to UnitUnknown.
func ParseWavelengthUnit(s string) WavelengthUnit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nm", "nanometer", "nanometers":
		return UnitNanometer
	case "um", "micrometer", "micrometers":
		return UnitMicrometer
	default:
		return UnitUnknown
	}
}

// Scale returns the unit's length in meters: 1e-9 for nanometers, 1e-6 for
// micrometers. Returns 0 for UnitUnknown; callers must treat that case as
// "no conversion possible".
func (u WavelengthUnit) Scale() float64 {
	switch u {
	case UnitNanometer:
		return 1e-9
	case UnitMicrometer:
		return 1e-6
	default:
		return 0
	}
}

func (u WavelengthUnit) String() string {
	switch u {
	case UnitNanometer:
		return "nm"
	case UnitMicrometer:
		return "um"
	default:
		return "unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
