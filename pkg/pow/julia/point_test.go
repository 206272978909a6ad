package julia

import (
	"errors"
	"math"
	"testing"
)

func TestPointBytesRoundTrip(t *testing.T) {
	points := []Point{
		NewPoint(0.285, 0),
		NewPoint(-1.9999999, 1.25),
		NewPoint(float32(math.Copysign(0, -1)), 3),
		NewPoint(math.SmallestNonzeroFloat32, -math.MaxFloat32),
	}

	for _, p := range points {
		b := p.Bytes()
		if len(b) != PointSize {
			t.Fatalf("expected %d bytes, got %d", PointSize, len(b))
		}

		got, err := PointFromBytes(b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Float32bits(got.X) != math.Float32bits(p.X) || math.Float32bits(got.Y) != math.Float32bits(p.Y) {
			t.Fatalf("expected %v bit for bit, got %v", p, got)
		}
	}

	_, err := PointFromBytes([]byte{1, 2, 3})
	if !errors.Is(err, ErrInvalidPointBytes) {
		t.Fatalf("expected ErrInvalidPointBytes, got %v", err)
	}
}

func TestPointString(t *testing.T) {
	if s := NewPoint(0.285, 0).String(); s != "0.285 + 0i" {
		t.Fatalf("unexpected string %q", s)
	}
	if s := NewPoint(-1.5, 2).String(); s != "-1.5 + 2i" {
		t.Fatalf("unexpected string %q", s)
	}
}

func TestPointSqMagnitude(t *testing.T) {
	if m := NewPoint(3, 4).SqMagnitude(); m != 25 {
		t.Fatalf("expected 25, got %v", m)
	}
	if NewPoint(float32(math.NaN()), 0).IsFinite() {
		t.Fatalf("expected NaN to be non-finite")
	}
	if !NewPoint(1, -1).IsFinite() {
		t.Fatalf("expected 1 - 1i to be finite")
	}
}
