package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"juliapow/internal/block"
	"juliapow/pkg/pow/julia"
)

func mineCmd(root *rootOptions) *cobra.Command {
	var (
		seed    int64
		payload string
	)

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine a genesis block against a freshly sampled candidate pool",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true

			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			return runMine(cmd, root, seed, payload)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "candidate pool seed (random when unset)")
	cmd.Flags().StringVar(&payload, "payload", "Genesis Block", "block payload")
	cmd.Flags().Float32Var(&root.pow.Radius, "radius", 2, "half side of the sampling square")
	cmd.Flags().IntVar(&root.pow.PoolSize, "pool", 500, "number of candidate points")

	return cmd
}

func runMine(cmd *cobra.Command, root *rootOptions, seed int64, payload string) error {
	logger := root.logger(cmd)

	engine, err := root.engine(logger)
	if err != nil {
		return err
	}

	pool, err := julia.SampleSeeded(seed, root.pow.Radius, root.pow.PoolSize)
	if err != nil {
		return err
	}

	difficulty, err := engine.NewDifficulty(root.pow.Parameter(), pool, root.pow.Target)
	if err != nil {
		return err
	}

	logger.Debug("mining",
		"parameter", difficulty.Parameter.String(),
		"target", difficulty.Target,
		"pool_size", len(difficulty.Candidates),
		"seed", seed)

	b := block.Genesis(payload, difficulty, &block.SystemClock{})

	// The engine cannot be interrupted; abandon it when the context ends.
	type result struct {
		nonce julia.Point
		err   error
	}
	done := make(chan result, 1)
	go func() {
		nonce, err := b.Mine(engine)
		done <- result{nonce, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	}

	out := cmd.OutOrStdout()
	if res.err != nil {
		fmt.Fprintln(out, "Couldn't mine block :(")
		return res.err
	}

	if err := b.Verify(engine); err != nil {
		fmt.Fprintf(out, "Point %v was incorrect\n", res.nonce)
		return err
	}

	fmt.Fprintf(out, "Found point %v correctly!\n", res.nonce)
	fmt.Fprintf(out, "hash: %s\n", hex.EncodeToString(b.Hash))
	return nil
}
