package julia

import (
	"fmt"
	"sync"
)

// DefaultMaxIterations is the iteration cap used by the genesis rules.
const DefaultMaxIterations uint32 = 200

// Engine mines and verifies escape-time proofs of work.
type Engine struct {
	maxIterations uint32
	workers       int
	trace         TraceFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers splits the candidate scan across n goroutines. The result is
// the same as the sequential scan.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithTrace reports every iterate computed by the engine's oracle. With more
// than one worker fn is called concurrently.
func WithTrace(fn TraceFunc) Option {
	return func(e *Engine) {
		e.trace = fn
	}
}

// NewEngine initializes an Engine with the given iteration cap.
func NewEngine(maxIterations uint32, opts ...Option) (*Engine, error) {
	if maxIterations == 0 {
		return nil, ErrInvalidIterationCap
	}

	e := &Engine{
		maxIterations: maxIterations,
		workers:       1,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// MaxIterations returns the iteration cap.
func (e *Engine) MaxIterations() uint32 {
	return e.maxIterations
}

// Workers returns the number of goroutines used by FindSolution.
func (e *Engine) Workers() int {
	return e.workers
}

// Oracle returns the escape-time oracle used by the engine.
func (e *Engine) Oracle() Oracle {
	return Oracle{MaxIterations: e.maxIterations, Trace: e.trace}
}

// EscapeTime returns the escape time of point under parameter.
func (e *Engine) EscapeTime(parameter, point Point) EscapeResult {
	return e.Oracle().EscapeTime(parameter, point)
}

// Verify reports whether point escapes under parameter in exactly target
// iterations. It costs a single oracle run regardless of the pool size the
// point was mined from.
func (e *Engine) Verify(parameter, point Point, target uint32) bool {
	if target >= e.maxIterations {
		return false
	}
	return e.EscapeTime(parameter, point) == Escaped(target)
}

// FindSolution returns the first candidate, in pool order, whose escape time
// equals target. It reports false when no candidate qualifies.
func (e *Engine) FindSolution(parameter Point, candidates []Point, target uint32) (Point, bool) {
	if target >= e.maxIterations || len(candidates) == 0 {
		return Point{}, false
	}

	if e.workers <= 1 || len(candidates) < 2*e.workers {
		i := e.scan(parameter, candidates, target)
		if i < 0 {
			return Point{}, false
		}
		return candidates[i], true
	}

	i := e.scanParallel(parameter, candidates, target)
	if i < 0 {
		return Point{}, false
	}
	return candidates[i], true
}

// Solve runs FindSolution over a Difficulty.
func (e *Engine) Solve(d *Difficulty) (Point, error) {
	p, ok := e.FindSolution(d.Parameter, d.Candidates, d.Target)
	if !ok {
		return Point{}, fmt.Errorf("%w: target %d, %d candidates", ErrNoSolutionFound, d.Target, len(d.Candidates))
	}
	return p, nil
}

// scan returns the index of the first match or -1.
func (e *Engine) scan(parameter Point, candidates []Point, target uint32) int {
	o := e.Oracle()
	want := Escaped(target)
	for i, c := range candidates {
		if o.EscapeTime(parameter, c) == want {
			return i
		}
	}
	return -1
}

// scanParallel splits the pool into contiguous chunks and returns the lowest
// matching index across all of them, or -1.
func (e *Engine) scanParallel(parameter Point, candidates []Point, target uint32) int {
	chunk := (len(candidates) + e.workers - 1) / e.workers
	found := make([]int, e.workers)

	wg := sync.WaitGroup{}
	for w := 0; w < e.workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(candidates))
		found[w] = -1
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			if i := e.scan(parameter, candidates[lo:hi], target); i >= 0 {
				found[w] = lo + i
			}
		}(w, lo, hi)
	}
	wg.Wait()

	// Chunks are ordered, so the first chunk with a match holds the minimum.
	for _, i := range found {
		if i >= 0 {
			return i
		}
	}
	return -1
}
