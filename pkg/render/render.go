package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"runtime"
	"sync"

	"juliapow/pkg/pow/julia"
)

var ErrInvalidSize = errors.New("image dimensions must be positive")

// Options describes a rendering of a Julia set.
type Options struct {
	Width, Height int

	Parameter     julia.Point
	MaxIterations uint32

	// Workers defaults to the number of CPUs.
	Workers int
}

// Render colours each pixel by the escape time of the point it maps to. The
// view spans [-1.5, 1.5] horizontally and [-1, 1] vertically.
func Render(opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	if opts.MaxIterations == 0 {
		return nil, julia.ErrInvalidIterationCap
	}
	if !opts.Parameter.IsFinite() {
		return nil, fmt.Errorf("%w: parameter %v", julia.ErrNonFinite, opts.Parameter)
	}

	parallel := opts.Workers
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	oracle := julia.Oracle{MaxIterations: opts.MaxIterations}

	w := float32(opts.Width)
	h := float32(opts.Height)

	rows := make(chan int)
	go func() {
		for y := 0; y < opts.Height; y++ {
			rows <- y
		}
		close(rows)
	}()

	wg := sync.WaitGroup{}
	wg.Add(parallel)
	for i := 0; i < parallel; i++ {
		go func() {
			defer wg.Done()
			for y := range rows {
				zy := 2 * (float32(y) - 0.5*h) / h
				for x := 0; x < opts.Width; x++ {
					z := julia.NewPoint(3*(float32(x)-0.5*w)/w, zy)
					img.SetRGBA(x, y, Colour(oracle.EscapeTime(opts.Parameter, z), opts.MaxIterations))
				}
			}
		}()
	}
	wg.Wait()

	return img, nil
}

// Colour maps an escape result to a pixel. Bounded points take the colour of
// the cap.
func Colour(r julia.EscapeResult, maxIterations uint32) color.RGBA {
	i := maxIterations
	if r.Escaped {
		i = r.Iterations
	}

	return color.RGBA{
		R: uint8(i << 3),
		G: uint8(i << 5),
		B: uint8(i << 4),
		A: 0xff,
	}
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
