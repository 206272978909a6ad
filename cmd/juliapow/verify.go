package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"juliapow/pkg/pow/julia"
)

var errInvalidProof = errors.New("point does not escape in the target iterations")

type pointFlags struct {
	x, y float32
}

func (p *pointFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float32Var(&p.x, "x", 0, "real part of the point")
	cmd.Flags().Float32Var(&p.y, "y", 0, "imaginary part of the point")
}

func (p *pointFlags) point() (julia.Point, error) {
	pt := julia.NewPoint(p.x, p.y)
	if !pt.IsFinite() {
		return julia.Point{}, fmt.Errorf("%w: %v", julia.ErrNonFinite, pt)
	}
	return pt, nil
}

func verifyCmd(root *rootOptions) *cobra.Command {
	pf := &pointFlags{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that a point escapes in exactly the target iterations",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			engine, err := root.engine(root.logger(cmd))
			if err != nil {
				return err
			}
			// Rejects out of range targets and non-finite parameters.
			difficulty, err := engine.NewDifficulty(root.pow.Parameter(), nil, root.pow.Target)
			if err != nil {
				return err
			}
			p, err := pf.point()
			if err != nil {
				return err
			}

			if !engine.Verify(difficulty.Parameter, p, difficulty.Target) {
				fmt.Fprintf(cmd.OutOrStdout(), "Point %v was incorrect: %v\n", p, engine.EscapeTime(difficulty.Parameter, p))
				return errInvalidProof
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Point %v is valid\n", p)
			return nil
		},
	}
	pf.register(cmd)

	return cmd
}

func escapeCmd(root *rootOptions) *cobra.Command {
	pf := &pointFlags{}

	cmd := &cobra.Command{
		Use:   "escape",
		Short: "Print the escape time of a point",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			engine, err := root.engine(root.logger(cmd))
			if err != nil {
				return err
			}
			parameter := root.pow.Parameter()
			if !parameter.IsFinite() {
				return fmt.Errorf("%w: parameter %v", julia.ErrNonFinite, parameter)
			}
			p, err := pf.point()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%v: %v\n", p, engine.EscapeTime(parameter, p))
			return nil
		},
	}
	pf.register(cmd)

	return cmd
}
