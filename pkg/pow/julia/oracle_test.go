package julia

import (
	"testing"
)

func TestEscapeTime(t *testing.T) {
	o := Oracle{MaxIterations: DefaultMaxIterations}

	tests := []struct {
		name      string
		parameter Point
		point     Point
		want      EscapeResult
	}{
		{"outside threshold", NewPoint(0.285, 0), NewPoint(3, 0), Escaped(0)},
		{"exactly on threshold", NewPoint(0, 0), NewPoint(2, 0), Escaped(1)},
		{"one iteration", NewPoint(0.285, 0), NewPoint(1.5, 0), Escaped(1)},
		{"two iterations", NewPoint(0, 0), NewPoint(1.2, 0), Escaped(2)},
		{"fixed point", NewPoint(0, 0), NewPoint(0, 0), Bounded()},
		{"attracted to zero", NewPoint(0, 0), NewPoint(0.5, 0.5), Bounded()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := o.EscapeTime(tt.parameter, tt.point)
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEscapeTimeDeterministic(t *testing.T) {
	o := Oracle{MaxIterations: DefaultMaxIterations}
	parameter := NewPoint(0.285, 0)

	points, err := SampleSeeded(7, 2, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, p := range points {
		first := o.EscapeTime(parameter, p)
		for i := 0; i < 3; i++ {
			if got := o.EscapeTime(parameter, p); got != first {
				t.Fatalf("point %v: expected %v on every call, got %v", p, first, got)
			}
		}
	}
}

func TestEscapeTimeCap(t *testing.T) {
	// (1.2, 0) under c = 0 leaves the threshold on the second iteration.
	parameter := NewPoint(0, 0)
	point := NewPoint(1.2, 0)

	if got := (Oracle{MaxIterations: 2}).EscapeTime(parameter, point); got != Bounded() {
		t.Fatalf("expected escape on the cap-th iteration to be bounded, got %v", got)
	}
	if got := (Oracle{MaxIterations: 3}).EscapeTime(parameter, point); got != Escaped(2) {
		t.Fatalf("expected escape after 2 iterations, got %v", got)
	}
	if got := (Oracle{MaxIterations: 1}).EscapeTime(parameter, NewPoint(3, 0)); got != Escaped(0) {
		t.Fatalf("expected seed check before the cap, got %v", got)
	}
}

func TestEscapeTimeTrace(t *testing.T) {
	var iterates []uint32
	o := Oracle{
		MaxIterations: DefaultMaxIterations,
		Trace: func(i uint32, _ Point) {
			iterates = append(iterates, i)
		},
	}

	got := o.EscapeTime(NewPoint(0, 0), NewPoint(1.2, 0))
	if got != Escaped(2) {
		t.Fatalf("tracing changed the result: %v", got)
	}
	if len(iterates) != 3 {
		t.Fatalf("expected 3 traced iterates, got %d", len(iterates))
	}
	for i, it := range iterates {
		if it != uint32(i) {
			t.Fatalf("expected iterate %d, got %d", i, it)
		}
	}
}

func TestEscapeResultString(t *testing.T) {
	if s := Bounded().String(); s != "bounded" {
		t.Fatalf("unexpected string %q", s)
	}
	if s := Escaped(31).String(); s != "escaped after 31 iterations" {
		t.Fatalf("unexpected string %q", s)
	}
}
