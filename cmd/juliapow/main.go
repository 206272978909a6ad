package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"juliapow/config"
	"juliapow/pkg/pow/julia"
)

type rootOptions struct {
	verbose bool
	pow     config.Pow
}

func mainCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "juliapow",
		Short: "Mine and verify Julia set escape-time proofs of work",
		Long:  "Mine and verify Julia set escape-time proofs of work.\n\n" + config.Usage(&config.Pow{}),
		Args:  cobra.ExactArgs(0),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Flags override the environment, which overrides the defaults.
			cfg, err := config.LoadPowConfig()
			if err != nil {
				return err
			}
			applyPowFlags(cmd, cfg, &opts.pow)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every iterate and debug details")
	flags.Float32Var(&opts.pow.ParameterRe, "re", 0.285, "real part of the fractal parameter")
	flags.Float32Var(&opts.pow.ParameterIm, "im", 0, "imaginary part of the fractal parameter")
	flags.Uint32Var(&opts.pow.MaxIterations, "max-iterations", julia.DefaultMaxIterations, "escape-time iteration cap")
	flags.Uint32Var(&opts.pow.Target, "target", 31, "required escape time")
	flags.IntVar(&opts.pow.Workers, "workers", 1, "goroutines scanning the candidate pool")

	cmd.AddCommand(mineCmd(opts), verifyCmd(opts), escapeCmd(opts), renderCmd(opts))

	return cmd
}

// applyPowFlags copies cfg into dst for every flag the user did not set.
func applyPowFlags(cmd *cobra.Command, cfg *config.Pow, dst *config.Pow) {
	flags := cmd.Flags()
	if !flags.Changed("re") {
		dst.ParameterRe = cfg.ParameterRe
	}
	if !flags.Changed("im") {
		dst.ParameterIm = cfg.ParameterIm
	}
	if !flags.Changed("max-iterations") {
		dst.MaxIterations = cfg.MaxIterations
	}
	if !flags.Changed("target") {
		dst.Target = cfg.Target
	}
	if !flags.Changed("workers") {
		dst.Workers = cfg.Workers
	}
	if !flags.Changed("radius") {
		dst.Radius = cfg.Radius
	}
	if !flags.Changed("pool") {
		dst.PoolSize = cfg.PoolSize
	}
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (o *rootOptions) engine(logger *slog.Logger) (*julia.Engine, error) {
	opts := []julia.Option{julia.WithWorkers(o.pow.Workers)}
	if o.verbose {
		opts = append(opts, julia.WithTrace(func(i uint32, p julia.Point) {
			logger.Debug("iterate", "i", i, "point", p.String())
		}))
	}
	return julia.NewEngine(o.pow.MaxIterations, opts...)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
