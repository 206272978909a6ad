package block

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"juliapow/pkg/pow/julia"
)

// HashSize is the length of a block hash.
const HashSize = sha256.Size

var (
	ErrMineFailed   = errors.New("couldn't mine block")
	ErrInvalidProof = errors.New("nonce does not satisfy the block difficulty")
	ErrHashMismatch = errors.New("block hash does not match its contents")
)

// Hashable is anything that can be rendered as bytes for hashing.
type Hashable interface {
	Bytes() []byte
}

// Hash returns the SHA-256 digest of h.Bytes().
func Hash(h Hashable) []byte {
	sum := sha256.Sum256(h.Bytes())
	return sum[:]
}

// Block links a payload to its predecessor and carries the winning point of
// its proof of work as the nonce.
type Block struct {
	Hash       []byte
	PrevHash   []byte
	Timestamp  uint64
	Nonce      julia.Point
	Payload    string
	Difficulty *julia.Difficulty
}

// New returns an unmined block with a zero hash and nonce.
func New(payload string, difficulty *julia.Difficulty, prevHash []byte, timestamp uint64) *Block {
	return &Block{
		Hash:       make([]byte, HashSize),
		PrevHash:   prevHash,
		Timestamp:  timestamp,
		Payload:    payload,
		Difficulty: difficulty,
	}
}

// Genesis returns the first block of a chain, stamped by clock.
func Genesis(payload string, difficulty *julia.Difficulty, clock Clock) *Block {
	return New(payload, difficulty, make([]byte, HashSize), clock.NowMillis())
}

// Bytes serializes the nonce, the payload and the timestamp, in that order.
// The timestamp is written as an unsigned 128-bit integer in native byte
// order.
func (b *Block) Bytes() []byte {
	buf := make([]byte, 0, julia.PointSize+len(b.Payload)+16)
	buf = append(buf, b.Nonce.Bytes()...)
	buf = append(buf, b.Payload...)
	buf = append(buf, timestampBytes(b.Timestamp)...)
	return buf
}

// Mine searches the difficulty's pool. On success the nonce and hash are
// updated and the winning point is returned.
func (b *Block) Mine(e *julia.Engine) (julia.Point, error) {
	nonce, err := e.Solve(b.Difficulty)
	if err != nil {
		return julia.Point{}, fmt.Errorf("%w: %w", ErrMineFailed, err)
	}

	b.Nonce = nonce
	b.Hash = Hash(b)
	return nonce, nil
}

// Verify checks the nonce against the difficulty and the stored hash against
// the block contents. It needs no access to the candidate pool.
func (b *Block) Verify(e *julia.Engine) error {
	d := b.Difficulty
	if !e.Verify(d.Parameter, b.Nonce, d.Target) {
		return fmt.Errorf("%w: %v under %v, target %d", ErrInvalidProof, b.Nonce, d.Parameter, d.Target)
	}
	if !bytes.Equal(b.Hash, Hash(b)) {
		return ErrHashMismatch
	}
	return nil
}

func timestampBytes(ts uint64) []byte {
	b := make([]byte, 16)
	if isLittleEndian() {
		binary.LittleEndian.PutUint64(b[:8], ts)
	} else {
		binary.BigEndian.PutUint64(b[8:], ts)
	}
	return b
}

func isLittleEndian() bool {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	return probe[0] == 1
}
