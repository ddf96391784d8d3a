// Package pipeline runs a full lagplot comparison: generate both sequences,
// build their lag-1 pairs, render the figure and optionally record the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/roach88/lagplot/internal/config"
	"github.com/roach88/lagplot/internal/lag"
	"github.com/roach88/lagplot/internal/render"
	"github.com/roach88/lagplot/internal/rng"
	"github.com/roach88/lagplot/internal/store"
)

// cycleLimit bounds the LCG period search so huge moduli stay cheap.
const cycleLimit = 1 << 24

// Stats summarizes a sequence. It is descriptive only, not a randomness test.
type Stats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Summarize computes Stats for a non-empty sequence.
func Summarize(seq rng.Sequence) Stats {
	if len(seq) == 0 {
		return Stats{}
	}
	return Stats{
		Count: len(seq),
		Mean:  stat.Mean(seq, nil),
		Min:   floats.Min(seq),
		Max:   floats.Max(seq),
	}
}

// Good is the good generator handed to Run together with the seed it was
// created from, so the run can be recorded and reproduced.
type Good struct {
	Source rng.Source
	Kind   string
	Seed   uint64
}

// NewGood builds the good generator the config asks for, drawing a seed from
// entropy when the config has none.
func NewGood(cfg config.Config) (Good, error) {
	var seed uint64
	if cfg.Good.Seed != nil {
		seed = *cfg.Good.Seed
	} else {
		s, err := rng.EntropySeed()
		if err != nil {
			return Good{}, err
		}
		seed = s
		if cfg.Good.Source == rng.KindMT19937 {
			seed &= math.MaxUint32
		}
	}

	src, err := rng.NewGood(cfg.Good.Source, seed)
	if err != nil {
		return Good{}, err
	}
	return Good{Source: src, Kind: cfg.Good.Source, Seed: seed}, nil
}

// Result is everything a run produced.
type Result struct {
	Bad         rng.Sequence `json:"-"`
	Good        rng.Sequence `json:"-"`
	BadPairs    lag.Pairs    `json:"-"`
	GoodPairs   lag.Pairs    `json:"-"`
	BadStats    Stats        `json:"bad_stats"`
	GoodStats   Stats        `json:"good_stats"`
	LCGCycle    *rng.Cycle   `json:"lcg_cycle,omitempty"`
	GoodKind    string       `json:"good_source"`
	GoodSeed    uint64       `json:"good_seed"`
	OutputPath  string       `json:"output_path"`
	OutputBytes int64        `json:"output_bytes"`
	RunID       string       `json:"run_id,omitempty"`
}

// Recorder persists a finished run. *store.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, run store.Run) (store.Run, error)
}

// Option configures Run.
type Option func(*options)

type options struct {
	recorder Recorder
	logger   *slog.Logger
}

// WithRecorder records the run after the figure is written.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithLogger overrides slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Run executes generate, pair, render and save with cfg. The figure is
// written to cfg.OutputPath, replacing any existing file.
func Run(ctx context.Context, cfg config.Config, good Good, opts ...Option) (*Result, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if good.Source == nil {
		return nil, fmt.Errorf("good generator is required")
	}

	params := cfg.LCGParams()
	log.Debug("generating sequences", "points", cfg.PointCount, "lcg", params, "good_source", good.Kind)

	bad, err := rng.GenerateLCG(params, cfg.PointCount)
	if err != nil {
		return nil, fmt.Errorf("bad generator: %w", err)
	}
	goodSeq, err := rng.Generate(good.Source, cfg.PointCount)
	if err != nil {
		return nil, fmt.Errorf("good generator: %w", err)
	}

	badPairs, err := lag.New(bad)
	if err != nil {
		return nil, fmt.Errorf("bad pairs: %w", err)
	}
	goodPairs, err := lag.New(goodSeq)
	if err != nil {
		return nil, fmt.Errorf("good pairs: %w", err)
	}

	res := &Result{
		Bad:        bad,
		Good:       goodSeq,
		BadPairs:   badPairs,
		GoodPairs:  goodPairs,
		BadStats:   Summarize(bad),
		GoodStats:  Summarize(goodSeq),
		GoodKind:   good.Kind,
		GoodSeed:   good.Seed,
		OutputPath: cfg.OutputPath,
	}
	if c, ok := params.Cycle(cycleLimit); ok {
		res.LCGCycle = &c
		log.Debug("lcg cycle", "tail", c.Tail, "period", c.Period)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fig := render.Comparison(badPairs, goodPairs)
	fig.Width = cfg.Figure.Width
	fig.Height = cfg.Figure.Height
	fig.DPI = cfg.Figure.DPI

	log.Debug("rendering figure", "path", cfg.OutputPath)
	n, err := render.Save(cfg.OutputPath, fig)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.OutputBytes = n
	log.Info("figure written", "path", cfg.OutputPath, "bytes", n, "pairs", badPairs.Len())

	if o.recorder != nil {
		run := store.Run{
			PointCount:  cfg.PointCount,
			LCG:         params,
			GoodSource:  good.Kind,
			GoodSeed:    good.Seed,
			OutputPath:  cfg.OutputPath,
			OutputBytes: n,
			BadDigest:   store.Digest(bad),
			GoodDigest:  store.Digest(goodSeq),
			BadMean:     res.BadStats.Mean,
			GoodMean:    res.GoodStats.Mean,
		}
		if res.LCGCycle != nil {
			run.LCGPeriod = res.LCGCycle.Period
		}
		recorded, err := o.recorder.Record(ctx, run)
		if err != nil {
			return nil, fmt.Errorf("record history: %w", err)
		}
		res.RunID = recorded.ID
		log.Debug("run recorded", "id", recorded.ID, "seq", recorded.Seq)
	}

	return res, nil
}
