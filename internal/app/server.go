package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"juliapow/config"
	"juliapow/internal/block"
	"juliapow/internal/server/tcp"
	"juliapow/internal/usecases"
)

const (
	ErrPowInit   = "failed to initialize pow"
	ErrRunServer = "failed server run"

	maxMessageSize = 1 << 16
)

// RunServer started server application
func RunServer(ctx context.Context) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.Default()
	logger = logger.With("Service", cfg.Server.Name)

	powUsecase, err := usecases.NewPowUsecase(cfg.Pow.Settings(), &block.SystemClock{})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrPowInit, err)
	}

	server := tcp.NewServer(
		&tcp.Config{
			Address:        cfg.Server.Addr,
			KeepAlive:      cfg.Server.KeepAlive,
			Deadline:       cfg.Server.Deadline,
			MaxMessageSize: maxMessageSize,
		},
		powUsecase,
		logger,
	)

	logger.Info("puzzle rules",
		"parameter", cfg.Pow.Parameter().String(),
		"target", cfg.Pow.Target,
		"pool_size", cfg.Pow.PoolSize,
		"max_iterations", cfg.Pow.MaxIterations)

	if err = server.Run(ctx); err != nil {
		if errors.Is(err, tcp.ErrServerShutdown) {
			logger.Info("server stopped")
			return nil
		}
		return fmt.Errorf("%s: %w", ErrRunServer, err)
	}

	return nil
}
