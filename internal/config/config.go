// Package config holds the parameters of a lagplot run and loads them from
// files and the environment.
//
// Layers are applied in order: Default, then a YAML or CUE file, then
// LAGPLOT_* environment variables, then command-line flags (applied by the
// cli package). Every layer only overrides the fields it sets.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/caarlos0/env/v11"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/roach88/lagplot/internal/render"
	"github.com/roach88/lagplot/internal/rng"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "LAGPLOT_"

// DefaultPointCount is the number of values drawn from each generator.
const DefaultPointCount = 500

// DefaultOutputPath is written relative to the working directory.
const DefaultOutputPath = "rng_comparison.png"

// Config enumerates every parameter of a run.
type Config struct {
	PointCount  int    `json:"point_count" yaml:"point_count" env:"POINT_COUNT"`
	LCG         LCG    `json:"lcg" yaml:"lcg" envPrefix:"LCG_"`
	Good        Good   `json:"good" yaml:"good" envPrefix:"GOOD_"`
	Figure      Figure `json:"figure" yaml:"figure" envPrefix:"FIGURE_"`
	OutputPath  string `json:"output_path" yaml:"output_path" env:"OUTPUT_PATH"`
	HistoryPath string `json:"history_path,omitempty" yaml:"history_path,omitempty" env:"HISTORY_PATH"`
}

// LCG holds the bad generator constants.
type LCG struct {
	Modulus    uint64 `json:"modulus" yaml:"modulus" env:"MODULUS"`
	Multiplier uint64 `json:"multiplier" yaml:"multiplier" env:"MULTIPLIER"`
	Increment  uint64 `json:"increment" yaml:"increment" env:"INCREMENT"`
	Seed       uint64 `json:"seed" yaml:"seed" env:"SEED"`
}

// Good selects the good generator. A nil Seed means seed from entropy.
type Good struct {
	Source string  `json:"source" yaml:"source" env:"SOURCE"`
	Seed   *uint64 `json:"seed,omitempty" yaml:"seed,omitempty" env:"SEED"`
}

// Figure is the output geometry in inches and dots per inch.
type Figure struct {
	Width  float64 `json:"width" yaml:"width" env:"WIDTH"`
	Height float64 `json:"height" yaml:"height" env:"HEIGHT"`
	DPI    int     `json:"dpi" yaml:"dpi" env:"DPI"`
}

// Default returns the configuration of the classic demonstration run.
func Default() Config {
	p := rng.DefaultLCGParams()
	return Config{
		PointCount: DefaultPointCount,
		LCG: LCG{
			Modulus:    p.Modulus,
			Multiplier: p.Multiplier,
			Increment:  p.Increment,
			Seed:       p.Seed,
		},
		Good: Good{Source: rng.KindPCG},
		Figure: Figure{
			Width:  render.DefaultWidth,
			Height: render.DefaultHeight,
			DPI:    render.DefaultDPI,
		},
		OutputPath: DefaultOutputPath,
	}
}

// LCGParams converts the LCG section to generator parameters.
func (c Config) LCGParams() rng.LCGParams {
	return rng.LCGParams{
		Modulus:    c.LCG.Modulus,
		Multiplier: c.LCG.Multiplier,
		Increment:  c.LCG.Increment,
		Seed:       c.LCG.Seed,
	}
}

// ValidationError lists every invalid field of a Config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var problems []string

	if c.PointCount < 2 {
		problems = append(problems, fmt.Sprintf("point_count must be at least 2, got %d", c.PointCount))
	}

	if err := c.LCGParams().Validate(); err != nil {
		var argErr *rng.ArgumentError
		if errors.As(err, &argErr) {
			problems = append(problems, fmt.Sprintf("lcg.%s=%s %s", argErr.Name, argErr.Value, argErr.Reason))
		} else {
			problems = append(problems, err.Error())
		}
	}

	if !isGoodSource(c.Good.Source) {
		problems = append(problems, fmt.Sprintf("good.source %q must be one of %v", c.Good.Source, rng.GoodKinds))
	} else if c.Good.Source == rng.KindMT19937 && c.Good.Seed != nil && *c.Good.Seed > math.MaxUint32 {
		problems = append(problems, fmt.Sprintf("good.seed=%d must fit in 32 bits for mt19937", *c.Good.Seed))
	}

	if c.Figure.Width <= 0 || c.Figure.Height <= 0 {
		problems = append(problems, fmt.Sprintf("figure size must be positive, got %vx%v", c.Figure.Width, c.Figure.Height))
	}
	if c.Figure.DPI <= 0 {
		problems = append(problems, fmt.Sprintf("figure.dpi must be positive, got %d", c.Figure.DPI))
	}

	if c.OutputPath == "" {
		problems = append(problems, "output_path must not be empty")
	} else if _, err := render.FormatFromPath(c.OutputPath); err != nil {
		problems = append(problems, "output_path: "+err.Error())
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func isGoodSource(s string) bool {
	for _, k := range rng.GoodKinds {
		if k == s {
			return true
		}
	}
	return false
}

// ApplyEnv overrides cfg with any LAGPLOT_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ExpandPaths resolves a leading ~ in the output and history paths.
func (c *Config) ExpandPaths() error {
	var err error
	if c.OutputPath, err = homedir.Expand(c.OutputPath); err != nil {
		return fmt.Errorf("expand output_path: %w", err)
	}
	if c.HistoryPath, err = homedir.Expand(c.HistoryPath); err != nil {
		return fmt.Errorf("expand history_path: %w", err)
	}
	return nil
}
