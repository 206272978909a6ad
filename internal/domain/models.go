package domain

import "juliapow/pkg/pow/julia"

// ProofOfWork is a challenge issued by the server. The candidate pool is not
// sent; both sides rebuild it from the token.
type ProofOfWork struct {
	Token         []byte
	Parameter     julia.Point
	Radius        float32
	PoolSize      int
	Target        uint32
	MaxIterations uint32
	PrevHash      []byte
	Timestamp     uint64
}

// Solution is a block mined against a ProofOfWork.
type Solution struct {
	Nonce   julia.Point
	Payload string
	Hash    []byte
}
