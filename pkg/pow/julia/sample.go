package julia

import (
	"fmt"
	"math/rand"
)

// SampleCandidates draws count points uniformly from the square
// [-radius, radius] × [-radius, radius]. The region is the bounding square of
// the disk of that radius, not the disk itself; solution distributions depend
// on it, so it must stay a square.
func SampleCandidates(rng *rand.Rand, radius float32, count int) ([]Point, error) {
	if !isFinite(radius) || radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive and finite, got %v", ErrInvalidRadius, radius)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidCount, count)
	}

	points := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		points = append(points, Point{
			X: uniform(rng, radius),
			Y: uniform(rng, radius),
		})
	}

	return points, nil
}

// SampleSeeded is SampleCandidates with a deterministic source, so that a
// miner and a verifier can rebuild the same pool from the same seed.
func SampleSeeded(seed int64, radius float32, count int) ([]Point, error) {
	return SampleCandidates(rand.New(rand.NewSource(seed)), radius, count)
}

func uniform(rng *rand.Rand, radius float32) float32 {
	return -radius + float32(2*radius*rng.Float32())
}
