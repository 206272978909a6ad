package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"juliapow/config"
	"juliapow/internal/client/tcp"
	"juliapow/internal/usecases"
)

// RunClient started client application
func RunClient(ctx context.Context) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.Default()
	logger = logger.With("Service", cfg.Client.Name)

	solverUsecase := usecases.NewSolverUsecase(cfg.Pow.Workers)

	client := tcp.NewClient(
		&tcp.Config{
			ServerAddr:     cfg.ServerAddr,
			Payload:        cfg.Payload,
			ConnectTimeout: 5 * time.Second,
			RequestTimeout: cfg.RequestTimeout,
			Connections:    cfg.Connections,
			RetryAttempts:  cfg.RetryAttempts,
			RetryDelay:     cfg.RetryDelay,
			MaxMessageSize: maxMessageSize,
		},
		solverUsecase,
		logger,
	)
	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start client: %w", err)
	}

	return nil
}
