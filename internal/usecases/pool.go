package usecases

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"juliapow/internal/domain"
	"juliapow/pkg/pow/julia"
)

// maxPoolSize bounds the work a challenge may demand from either side.
const maxPoolSize = 1 << 20

var ErrChallengeRange = errors.New("challenge parameters out of acceptable range")

// PoolSeed derives the candidate pool seed from a challenge token.
func PoolSeed(token []byte) int64 {
	sum := blake2b.Sum256(token)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// candidatePool rebuilds the pool a challenge refers to.
func candidatePool(pow *domain.ProofOfWork) ([]julia.Point, error) {
	if pow.PoolSize > maxPoolSize {
		return nil, fmt.Errorf("%w: pool size %d exceeds %d", ErrChallengeRange, pow.PoolSize, maxPoolSize)
	}
	return julia.SampleSeeded(PoolSeed(pow.Token), pow.Radius, pow.PoolSize)
}

func containsPoint(pool []julia.Point, p julia.Point) bool {
	for _, c := range pool {
		if c == p {
			return true
		}
	}
	return false
}
