package usecases

import (
	"fmt"

	"juliapow/internal/block"
	"juliapow/internal/domain"
	"juliapow/pkg/pow/julia"
)

type SolverUsecase interface {
	FindSolution(challenge *domain.ProofOfWork, payload string) (*domain.Solution, error)
}

type solverUsecaseImpl struct {
	workers int
}

// NewSolverUsecase
func NewSolverUsecase(workers int) SolverUsecase {
	return &solverUsecaseImpl{
		workers: workers,
	}
}

// FindSolution mines a block carrying payload against the challenge. The
// error wraps julia.ErrNoSolutionFound when the pool has no qualifying point.
func (s *solverUsecaseImpl) FindSolution(challenge *domain.ProofOfWork, payload string) (*domain.Solution, error) {
	engine, err := julia.NewEngine(challenge.MaxIterations, julia.WithWorkers(s.workers))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}

	pool, err := candidatePool(challenge)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild candidate pool: %w", err)
	}

	d, err := engine.NewDifficulty(challenge.Parameter, pool, challenge.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to build difficulty: %w", err)
	}

	b := block.New(payload, d, challenge.PrevHash, challenge.Timestamp)
	if _, err := b.Mine(engine); err != nil {
		return nil, err
	}

	return &domain.Solution{
		Nonce:   b.Nonce,
		Payload: b.Payload,
		Hash:    b.Hash,
	}, nil
}
