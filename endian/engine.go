// Package endian provides byte order utilities for reading and writing raw
// cube payloads.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine
// interface, so that the typed view over a cube payload can decode and
// encode elements with a single engine value.
//
// # Basic Usage
//
// Most cubes are written on little-endian hardware, so Native() is usually
// the right engine for freshly created cubes:
//
//	import "github.com/specio/hsicube/endian"
//
//	engine := endian.Native()
//
// Header files record the stored byte order out-of-band; ENVI-style headers
// use a numeric code that FromENVICode translates:
//
//	engine, err := endian.FromENVICode(1) // big-endian payload
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian
// from the standard library, making it fully compatible with existing Go
// code while providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// ENVI standard byte order codes: 0 = little-endian, 1 = big-endian.
const (
	ENVILittleEndian = 0
	ENVIBigEndian    = 1
)

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// Native returns the engine matching the host's byte order.
func Native() EndianEngine {
	if CheckEndianness() == binary.BigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether the engine matches the host's byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// FromENVICode converts an ENVI header byte-order code (0 = little-endian,
// 1 = big-endian) into the corresponding engine.
func FromENVICode(code int) (EndianEngine, error) {
	switch code {
	case ENVILittleEndian:
		return binary.LittleEndian, nil
	case ENVIBigEndian:
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("invalid ENVI byte order code: %d", code)
	}
}

// ToENVICode returns the ENVI header byte-order code for the engine.
func ToENVICode(engine EndianEngine) int {
	if engine == binary.BigEndian {
		return ENVIBigEndian
	}

	return ENVILittleEndian
}
