package julia

import (
	"errors"
	"math"
	"testing"
)

func TestSampleCandidates(t *testing.T) {
	points, err := SampleSeeded(1, 2, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 500 {
		t.Fatalf("expected 500 points, got %d", len(points))
	}

	// Uniform over the bounding square, so corners outside the disk occur.
	outsideDisk := 0
	for _, p := range points {
		if p.X < -2 || p.X > 2 || p.Y < -2 || p.Y > 2 {
			t.Fatalf("point %v outside the sampling square", p)
		}
		if p.SqMagnitude() > 4 {
			outsideDisk++
		}
	}
	if outsideDisk == 0 {
		t.Fatalf("expected some samples in the square's corners")
	}
}

func TestSampleSeededIsDeterministic(t *testing.T) {
	a, err := SampleSeeded(99, 1.5, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := SampleSeeded(99, 1.5, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestSampleCandidatesInvalidInput(t *testing.T) {
	for _, radius := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
		_, err := SampleSeeded(1, radius, 10)
		if !errors.Is(err, ErrInvalidRadius) {
			t.Fatalf("radius %v: expected ErrInvalidRadius, got %v", radius, err)
		}
	}

	_, err := SampleSeeded(1, 2, -1)
	if !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}

	points, err := SampleSeeded(1, 2, 0)
	if err != nil || len(points) != 0 {
		t.Fatalf("expected an empty pool, got %d points and %v", len(points), err)
	}
}
