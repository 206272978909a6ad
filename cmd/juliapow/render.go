package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"juliapow/pkg/render"
)

func renderCmd(root *rootOptions) *cobra.Command {
	var (
		width, height int
		out           string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the escape times of the fractal parameter to a PNG",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			logger := root.logger(cmd)

			start := time.Now()
			img, err := render.Render(render.Options{
				Width:         width,
				Height:        height,
				Parameter:     root.pow.Parameter(),
				MaxIterations: root.pow.MaxIterations,
				Workers:       root.pow.Workers,
			})
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := render.WritePNG(f, img); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", out, err)
			}

			logger.Info("rendered", "file", out, "width", width, "height", height, "elapsed", time.Since(start))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 800, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 600, "image height in pixels")
	cmd.Flags().StringVarP(&out, "out", "o", "output.png", "output file")

	return cmd
}
