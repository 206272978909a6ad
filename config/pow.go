package config

import (
	"juliapow/internal/usecases"
	"juliapow/pkg/pow/julia"
)

// Pow holds the puzzle rules shared by server and client.
type Pow struct {
	MaxIterations uint32  `yaml:"max_iterations" env:"POW_MAX_ITERATIONS" env-default:"200" env-description:"escape-time iteration cap"`
	ParameterRe   float32 `yaml:"parameter_re" env:"POW_PARAMETER_RE" env-default:"0.285" env-description:"real part of the fractal parameter"`
	ParameterIm   float32 `yaml:"parameter_im" env:"POW_PARAMETER_IM" env-default:"0" env-description:"imaginary part of the fractal parameter"`
	Radius        float32 `yaml:"radius" env:"POW_RADIUS" env-default:"2" env-description:"half side of the sampling square"`
	PoolSize      int     `yaml:"pool_size" env:"POW_POOL_SIZE" env-default:"500" env-description:"candidate points per challenge"`
	Target        uint32  `yaml:"target" env:"POW_TARGET" env-default:"31" env-description:"required escape time"`
	Workers       int     `yaml:"workers" env:"POW_WORKERS" env-default:"1" env-description:"goroutines scanning the pool"`
}

// Parameter returns the fractal parameter as a point.
func (p Pow) Parameter() julia.Point {
	return julia.NewPoint(p.ParameterRe, p.ParameterIm)
}

// Settings converts the configuration into usecase settings.
func (p Pow) Settings() usecases.Settings {
	return usecases.Settings{
		Parameter:     p.Parameter(),
		Radius:        p.Radius,
		PoolSize:      p.PoolSize,
		Target:        p.Target,
		MaxIterations: p.MaxIterations,
		Workers:       p.Workers,
	}
}
