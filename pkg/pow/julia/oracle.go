package julia

/*
	Escape time:

	For a fixed parameter c the Julia iteration maps a point z to z² + c.
	Starting from the sample point itself, the escape time is the number of
	iterations applied before |z|² first exceeds EscapeRadiusSq. The seed is
	checked before any iteration, so a point already outside the threshold
	escapes in 0 iterations. Points still inside after MaxIterations
	iterations are reported as bounded.

	Everything is computed in float32. Each product is converted explicitly so
	the compiler cannot fuse it into a multiply-add, which would change the
	escape time of points near the boundary between architectures.
*/

import "fmt"

// EscapeRadiusSq is the squared magnitude a point must exceed to escape.
const EscapeRadiusSq float32 = 4.0

// EscapeResult is the outcome of one escape-time computation.
type EscapeResult struct {
	Iterations uint32
	Escaped    bool
}

// Escaped returns the result for a point that escaped after n iterations.
func Escaped(n uint32) EscapeResult {
	return EscapeResult{Iterations: n, Escaped: true}
}

// Bounded returns the result for a point that never escaped.
func Bounded() EscapeResult {
	return EscapeResult{}
}

func (r EscapeResult) String() string {
	if !r.Escaped {
		return "bounded"
	}
	return fmt.Sprintf("escaped after %d iterations", r.Iterations)
}

// TraceFunc observes the i-th iterate of a point. It must not retain state
// that influences the computation.
type TraceFunc func(i uint32, p Point)

// Oracle computes escape times with a fixed iteration cap.
type Oracle struct {
	MaxIterations uint32
	Trace         TraceFunc
}

// EscapeTime iterates point under parameter until it escapes or the cap is
// reached. Both inputs must be finite.
func (o Oracle) EscapeTime(parameter, point Point) EscapeResult {
	var i uint32
	p := point

	for {
		if o.Trace != nil {
			o.Trace(i, p)
		}

		if p.SqMagnitude() > EscapeRadiusSq || i == o.MaxIterations {
			break
		}

		x := float32(p.X*p.X) - float32(p.Y*p.Y) + parameter.X
		p.Y = float32(2*p.X*p.Y) + parameter.Y
		p.X = x
		i++
	}

	if i == o.MaxIterations {
		return Bounded()
	}
	return Escaped(i)
}
