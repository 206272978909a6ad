package block

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"testing"

	"juliapow/pkg/pow/julia"
)

func newTestDifficulty(t *testing.T, e *julia.Engine, pool []julia.Point, target uint32) *julia.Difficulty {
	t.Helper()
	d, err := e.NewDifficulty(julia.NewPoint(0, 0), pool, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

func newTestEngine(t *testing.T) *julia.Engine {
	t.Helper()
	e, err := julia.NewEngine(julia.DefaultMaxIterations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return e
}

func TestBytesLayout(t *testing.T) {
	b := New("Genesis Block", nil, make([]byte, HashSize), 1700000000000)
	b.Nonce = julia.NewPoint(1.5, -0.25)

	got := b.Bytes()
	want := append(b.Nonce.Bytes(), []byte("Genesis Block")...)
	want = append(want, timestampBytes(1700000000000)...)

	if !bytes.Equal(got, want) {
		t.Fatalf("expected %x, got %x", want, got)
	}
	if len(got) != julia.PointSize+len("Genesis Block")+16 {
		t.Fatalf("unexpected length %d", len(got))
	}

	sum := sha256.Sum256(got)
	if !bytes.Equal(Hash(b), sum[:]) {
		t.Fatalf("expected hash to be sha256 of block bytes")
	}
}

func TestTimestampBytes(t *testing.T) {
	ts := timestampBytes(0x0102030405060708)
	if len(ts) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(ts))
	}
	if isLittleEndian() && (ts[0] != 0x08 || ts[7] != 0x01 || ts[15] != 0) {
		t.Fatalf("unexpected little endian layout %x", ts)
	}
	if !isLittleEndian() && (ts[15] != 0x08 || ts[8] != 0x01 || ts[0] != 0) {
		t.Fatalf("unexpected big endian layout %x", ts)
	}
}

func TestMine(t *testing.T) {
	e := newTestEngine(t)
	d := newTestDifficulty(t, e, []julia.Point{julia.NewPoint(0, 0), julia.NewPoint(1.2, 0)}, 2)

	b := Genesis("Genesis Block", d, FixedClock(42))
	if !bytes.Equal(b.Hash, make([]byte, HashSize)) {
		t.Fatalf("expected unmined block to carry a zero hash")
	}

	nonce, err := b.Mine(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nonce != julia.NewPoint(1.2, 0) || b.Nonce != nonce {
		t.Fatalf("expected nonce 1.2 + 0i, got %v (stored %v)", nonce, b.Nonce)
	}
	if !bytes.Equal(b.Hash, Hash(b)) {
		t.Fatalf("expected hash to be recomputed after mining")
	}
	if err := b.Verify(e); err != nil {
		t.Fatalf("expected mined block to verify: %v", err)
	}
}

func TestMineNoSolution(t *testing.T) {
	e := newTestEngine(t)
	d := newTestDifficulty(t, e, []julia.Point{julia.NewPoint(0, 0)}, 2)

	b := New("payload", d, make([]byte, HashSize), 1)
	_, err := b.Mine(e)
	if !errors.Is(err, ErrMineFailed) || !errors.Is(err, julia.ErrNoSolutionFound) {
		t.Fatalf("expected mining failure, got %v", err)
	}
	if b.Nonce != (julia.Point{}) {
		t.Fatalf("expected nonce untouched, got %v", b.Nonce)
	}
}

func TestVerifyTampered(t *testing.T) {
	e := newTestEngine(t)
	d := newTestDifficulty(t, e, []julia.Point{julia.NewPoint(1.2, 0)}, 2)

	b := New("payload", d, make([]byte, HashSize), 1)
	if _, err := b.Mine(e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.Payload = "other payload"
	if err := b.Verify(e); !errors.Is(err, ErrHashMismatch) {
		t.Fatalf("expected ErrHashMismatch, got %v", err)
	}

	b.Payload = "payload"
	b.Nonce = julia.NewPoint(3, 0)
	if err := b.Verify(e); !errors.Is(err, ErrInvalidProof) {
		t.Fatalf("expected ErrInvalidProof, got %v", err)
	}
}

func TestSystemClockNeverDecreases(t *testing.T) {
	c := &SystemClock{}
	prev := c.NowMillis()
	for i := 0; i < 100; i++ {
		now := c.NowMillis()
		if now < prev {
			t.Fatalf("clock went backwards: %d < %d", now, prev)
		}
		prev = now
	}

	c.last = prev + 1_000_000
	if got := c.NowMillis(); got != prev+1_000_000 {
		t.Fatalf("expected clamped reading %d, got %d", prev+1_000_000, got)
	}
}
