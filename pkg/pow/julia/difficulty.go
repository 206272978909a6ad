package julia

import "fmt"

// Difficulty is the puzzle shared by every block mined under the same rules:
// the fractal parameter, the pool a miner may search and the exact escape
// time a winning point must have. It is read-only once built.
type Difficulty struct {
	Parameter  Point
	Candidates []Point
	Target     uint32
}

// NewDifficulty validates and builds a Difficulty for this engine's cap. The
// candidate slice is copied.
func (e *Engine) NewDifficulty(parameter Point, candidates []Point, target uint32) (*Difficulty, error) {
	if target >= e.maxIterations {
		return nil, fmt.Errorf("%w: target must be below %d, got %d", ErrInvalidTarget, e.maxIterations, target)
	}
	if !parameter.IsFinite() {
		return nil, fmt.Errorf("%w: parameter %v", ErrNonFinite, parameter)
	}
	for i, c := range candidates {
		if !c.IsFinite() {
			return nil, fmt.Errorf("%w: candidate %d is %v", ErrNonFinite, i, c)
		}
	}

	pool := make([]Point, len(candidates))
	copy(pool, candidates)

	return &Difficulty{
		Parameter:  parameter,
		Candidates: pool,
		Target:     target,
	}, nil
}
