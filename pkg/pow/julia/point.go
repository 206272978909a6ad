package julia

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// PointSize is the length of a serialized Point.
const PointSize = 8

// Point is a complex number X + Yi in single precision.
type Point struct {
	X float32
	Y float32
}

// NewPoint returns X + Yi.
func NewPoint(x, y float32) Point {
	return Point{X: x, Y: y}
}

// SqMagnitude returns X² + Y².
func (p Point) SqMagnitude() float32 {
	return float32(p.X*p.X) + float32(p.Y*p.Y)
}

// IsFinite reports whether neither component is NaN or infinite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Bytes returns X followed by Y, each in native byte order.
func (p Point) Bytes() []byte {
	b := make([]byte, PointSize)
	binary.NativeEndian.PutUint32(b[:4], math.Float32bits(p.X))
	binary.NativeEndian.PutUint32(b[4:], math.Float32bits(p.Y))
	return b
}

// PointFromBytes decodes the output of Point.Bytes.
func PointFromBytes(b []byte) (Point, error) {
	if len(b) != PointSize {
		return Point{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPointBytes, PointSize, len(b))
	}
	return Point{
		X: math.Float32frombits(binary.NativeEndian.Uint32(b[:4])),
		Y: math.Float32frombits(binary.NativeEndian.Uint32(b[4:])),
	}, nil
}

func (p Point) String() string {
	return formatFloat(p.X) + " + " + formatFloat(p.Y) + "i"
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
