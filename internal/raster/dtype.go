package raster

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DType identifies the element type of a pixel buffer. Buffers store
// elements in little-endian byte order so their memory footprint matches the
// element size the caller asked for.
type DType int

const (
	Uint8 DType = iota
	Uint16
	Float32
	Float64
)

// Size returns the number of bytes one element occupies.
func (d DType) Size() int {
	switch d {
	case Uint8:
		return 1
	case Uint16:
		return 2
	case Float32:
		return 4
	default:
		return 8
	}
}

func (d DType) String() string {
	switch d {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("dtype(%d)", int(d))
	}
}

// ParseDType converts a dtype name such as "float32" to its DType value.
func ParseDType(s string) (DType, error) {
	switch s {
	case "uint8":
		return Uint8, nil
	case "uint16":
		return Uint16, nil
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	default:
		return 0, fmt.Errorf("%w: unknown dtype %q", ErrInvalidArgument, s)
	}
}

// put encodes v as one element at the start of b.
func (d DType) put(b []byte, v float64) {
	switch d {
	case Uint8:
		b[0] = byte(v)
	case Uint16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case Float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	default:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	}
}

// at decodes one element from the start of b.
func (d DType) at(b []byte) float64 {
	switch d {
	case Uint8:
		return float64(b[0])
	case Uint16:
		return float64(binary.LittleEndian.Uint16(b))
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	default:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
}
