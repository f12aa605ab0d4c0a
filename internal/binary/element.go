// Package binary provides fixed-width element encoding for native CDF buffers.
//
// Buffers exchanged with the storage engine hold elements in the host's
// little-endian layout. This package reads and writes single elements at a
// known width; all buffer geometry (strides, axis order) is the caller's
// concern.
package binary

import (
	"encoding/binary"
	"math"
)

// PutInt writes a signed integer of the given byte width.
func PutInt(b []byte, width int, v int64) {
	PutUint(b, width, uint64(v))
}

// Int reads a signed integer of the given byte width, sign-extended.
func Int(b []byte, width int) int64 {
	u := Uint(b, width)
	shift := uint(64 - 8*width)
	return int64(u<<shift) >> shift
}

// PutUint writes an unsigned integer of the given byte width.
func PutUint(b []byte, width int, v uint64) {
	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(b, v)
	default:
		panic("binary: unsupported element width")
	}
}

// Uint reads an unsigned integer of the given byte width.
func Uint(b []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	default:
		panic("binary: unsupported element width")
	}
}

// PutFloat32 writes an IEEE 754 single-precision value.
func PutFloat32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

// Float32 reads an IEEE 754 single-precision value.
func Float32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// PutFloat64 writes an IEEE 754 double-precision value.
func PutFloat64(b []byte, v float64) {
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
}

// Float64 reads an IEEE 754 double-precision value.
func Float64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
