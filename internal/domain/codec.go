package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeebo/bencode"

	"juliapow/pkg/pow/julia"
)

var ErrInvalidMessage = errors.New("invalid message")

// Floats travel as IEEE-754 bit patterns so both sides see identical values.
type wirePoint struct {
	X uint32 `bencode:"x"`
	Y uint32 `bencode:"y"`
}

type wireChallenge struct {
	Token         []byte    `bencode:"token"`
	Parameter     wirePoint `bencode:"parameter"`
	Radius        uint32    `bencode:"radius"`
	PoolSize      int64     `bencode:"pool size"`
	Target        uint32    `bencode:"target"`
	MaxIterations uint32    `bencode:"max iterations"`
	PrevHash      []byte    `bencode:"prev hash"`
	Timestamp     uint64    `bencode:"timestamp"`
}

type wireSolution struct {
	Nonce   wirePoint `bencode:"nonce"`
	Payload string    `bencode:"payload"`
	Hash    []byte    `bencode:"hash"`
}

func toWirePoint(p julia.Point) wirePoint {
	return wirePoint{X: math.Float32bits(p.X), Y: math.Float32bits(p.Y)}
}

func (w wirePoint) point() julia.Point {
	return julia.NewPoint(math.Float32frombits(w.X), math.Float32frombits(w.Y))
}

// EncodeChallenge bencodes a challenge.
func EncodeChallenge(pow *ProofOfWork) ([]byte, error) {
	return bencode.EncodeBytes(wireChallenge{
		Token:         pow.Token,
		Parameter:     toWirePoint(pow.Parameter),
		Radius:        math.Float32bits(pow.Radius),
		PoolSize:      int64(pow.PoolSize),
		Target:        pow.Target,
		MaxIterations: pow.MaxIterations,
		PrevHash:      pow.PrevHash,
		Timestamp:     pow.Timestamp,
	})
}

// DecodeChallenge parses the output of EncodeChallenge.
func DecodeChallenge(data []byte) (*ProofOfWork, error) {
	var w wireChallenge
	if err := bencode.DecodeBytes(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if len(w.Token) == 0 || w.PoolSize < 0 || w.PoolSize > math.MaxInt32 {
		return nil, fmt.Errorf("%w: malformed challenge", ErrInvalidMessage)
	}

	return &ProofOfWork{
		Token:         w.Token,
		Parameter:     w.Parameter.point(),
		Radius:        math.Float32frombits(w.Radius),
		PoolSize:      int(w.PoolSize),
		Target:        w.Target,
		MaxIterations: w.MaxIterations,
		PrevHash:      w.PrevHash,
		Timestamp:     w.Timestamp,
	}, nil
}

// EncodeSolution bencodes a solution.
func EncodeSolution(sol *Solution) ([]byte, error) {
	return bencode.EncodeBytes(wireSolution{
		Nonce:   toWirePoint(sol.Nonce),
		Payload: sol.Payload,
		Hash:    sol.Hash,
	})
}

// DecodeSolution parses the output of EncodeSolution.
func DecodeSolution(data []byte) (*Solution, error) {
	var w wireSolution
	if err := bencode.DecodeBytes(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	return &Solution{
		Nonce:   w.Nonce.point(),
		Payload: w.Payload,
		Hash:    w.Hash,
	}, nil
}
