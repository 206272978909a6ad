package usecases

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"

	"juliapow/internal/block"
	"juliapow/internal/domain"
	"juliapow/pkg/pow/julia"
)

const tokenLength = 16

var ErrGenerateRandom = errors.New("failed to generate random challenge")

// Settings are the puzzle rules a server hands out and a client mines with.
type Settings struct {
	Parameter     julia.Point
	Radius        float32
	PoolSize      int
	Target        uint32
	MaxIterations uint32
	Workers       int
}

// PowUsecase defines the interface for Proof of Work usecase.
type PowUsecase interface {
	GenerateChallenge() (*domain.ProofOfWork, error)
	ValidateSolution(challenge *domain.ProofOfWork, solution *domain.Solution) (bool, error)
	Tip() []byte
}

type powUsecaseImpl struct {
	settings Settings
	engine   *julia.Engine
	clock    block.Clock

	mu  sync.Mutex
	tip []byte
}

// NewPowUsecase validates the settings once so every challenge issued is
// solvable in principle.
func NewPowUsecase(settings Settings, clock block.Clock) (PowUsecase, error) {
	engine, err := julia.NewEngine(settings.MaxIterations)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	if _, err := engine.NewDifficulty(settings.Parameter, nil, settings.Target); err != nil {
		return nil, fmt.Errorf("failed to initialize difficulty: %w", err)
	}
	if _, err := julia.SampleSeeded(0, settings.Radius, 0); err != nil {
		return nil, fmt.Errorf("failed to initialize sampling: %w", err)
	}
	if settings.PoolSize < 1 || settings.PoolSize > maxPoolSize {
		return nil, fmt.Errorf("%w: pool size must be between 1 and %d", ErrChallengeRange, maxPoolSize)
	}

	return &powUsecaseImpl{
		settings: settings,
		engine:   engine,
		clock:    clock,
		tip:      make([]byte, block.HashSize),
	}, nil
}

// GenerateChallenge issues a challenge with a fresh random token, linked to
// the last accepted block.
func (p *powUsecaseImpl) GenerateChallenge() (*domain.ProofOfWork, error) {
	token := make([]byte, tokenLength)
	if _, err := rand.Read(token); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateRandom, err)
	}

	return &domain.ProofOfWork{
		Token:         token,
		Parameter:     p.settings.Parameter,
		Radius:        p.settings.Radius,
		PoolSize:      p.settings.PoolSize,
		Target:        p.settings.Target,
		MaxIterations: p.engine.MaxIterations(),
		PrevHash:      p.Tip(),
		Timestamp:     p.clock.NowMillis(),
	}, nil
}

// ValidateSolution checks that the nonce comes from the challenge's pool, that
// it escapes in exactly the target iterations and that the block hash matches.
// It returns false without an error when the solution is simply wrong.
func (p *powUsecaseImpl) ValidateSolution(challenge *domain.ProofOfWork, solution *domain.Solution) (bool, error) {
	if challenge == nil || solution == nil {
		return false, nil
	}

	pool, err := candidatePool(challenge)
	if err != nil {
		return false, fmt.Errorf("failed to rebuild candidate pool: %w", err)
	}
	if !containsPoint(pool, solution.Nonce) {
		return false, nil
	}

	d, err := p.engine.NewDifficulty(challenge.Parameter, nil, challenge.Target)
	if err != nil {
		return false, fmt.Errorf("failed to rebuild difficulty: %w", err)
	}

	b := block.New(solution.Payload, d, challenge.PrevHash, challenge.Timestamp)
	b.Nonce = solution.Nonce
	b.Hash = solution.Hash

	if err := b.Verify(p.engine); err != nil {
		if errors.Is(err, block.ErrInvalidProof) || errors.Is(err, block.ErrHashMismatch) {
			return false, nil
		}
		return false, err
	}

	p.mu.Lock()
	p.tip = append([]byte(nil), b.Hash...)
	p.mu.Unlock()

	return true, nil
}

// Tip returns the hash of the last accepted block.
func (p *powUsecaseImpl) Tip() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.tip...)
}
