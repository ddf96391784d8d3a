package rng

import "math/bits"

// Default LCG parameters. The modulus is deliberately tiny: the sequence
// repeats within 256 steps and consecutive values fall on a few lines.
const (
	DefaultModulus    uint64 = 256
	DefaultMultiplier uint64 = 137
	DefaultIncrement  uint64 = 1
	DefaultSeed       uint64 = 1
)

// MaxModulus is the largest accepted modulus. Every residue below it
// converts to float64 exactly, so state/modulus stays below 1.
const MaxModulus uint64 = 1 << 53

// LCGParams holds the constants of x' = (a*x + c) mod m.
type LCGParams struct {
	Modulus    uint64 `json:"modulus"`
	Multiplier uint64 `json:"multiplier"`
	Increment  uint64 `json:"increment"`
	Seed       uint64 `json:"seed"`
}

// DefaultLCGParams returns the parameters of the demonstration generator.
func DefaultLCGParams() LCGParams {
	return LCGParams{
		Modulus:    DefaultModulus,
		Multiplier: DefaultMultiplier,
		Increment:  DefaultIncrement,
		Seed:       DefaultSeed,
	}
}

// Validate checks that every parameter is a residue of the modulus.
// A zero multiplier is rejected because it collapses the sequence to c.
func (p LCGParams) Validate() error {
	if p.Modulus < 2 || p.Modulus > MaxModulus {
		return newArgumentError("modulus", p.Modulus, "must be in [2, 2^53]")
	}
	if p.Multiplier == 0 || p.Multiplier >= p.Modulus {
		return newArgumentError("multiplier", p.Multiplier, "must be in [1, modulus)")
	}
	if p.Increment >= p.Modulus {
		return newArgumentError("increment", p.Increment, "must be in [0, modulus)")
	}
	if p.Seed >= p.Modulus {
		return newArgumentError("seed", p.Seed, "must be in [0, modulus)")
	}
	return nil
}

// step applies the recurrence once. a*x can exceed 64 bits, so the product
// is computed in 128 bits.
func (p LCGParams) step(x uint64) uint64 {
	hi, lo := bits.Mul64(p.Multiplier, x)
	lo, carry := bits.Add64(lo, p.Increment, 0)
	hi += carry
	return bits.Rem64(hi, lo, p.Modulus)
}

// LCG is a linear congruential generator. It is not safe for concurrent use.
type LCG struct {
	params LCGParams
	state  uint64
}

// NewLCG creates a generator positioned at params.Seed.
func NewLCG(params LCGParams) (*LCG, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &LCG{params: params, state: params.Seed}, nil
}

// Params returns the generator constants.
func (g *LCG) Params() LCGParams {
	return g.params
}

// State returns the current integer state without advancing.
func (g *LCG) State() uint64 {
	return g.state
}

// Next advances the state and returns it.
func (g *LCG) Next() uint64 {
	g.state = g.params.step(g.state)
	return g.state
}

// Float64 advances the state and returns state/modulus, which is in [0, 1).
func (g *LCG) Float64() float64 {
	return float64(g.Next()) / float64(g.params.Modulus)
}

// Cycle describes the eventual periodicity of the LCG state sequence
// starting at the seed: Tail states precede a loop of Period states.
type Cycle struct {
	Tail   uint64 `json:"tail"`
	Period uint64 `json:"period"`
}

// Cycle finds the tail and period of the state sequence with Brent's
// algorithm. It gives up with ok == false when the period exceeds limit.
func (p LCGParams) Cycle(limit uint64) (c Cycle, ok bool) {
	if err := p.Validate(); err != nil || limit == 0 {
		return Cycle{}, false
	}

	power, lam := uint64(1), uint64(1)
	tortoise := p.Seed
	hare := p.step(p.Seed)
	for tortoise != hare {
		if power == lam {
			tortoise = hare
			power *= 2
			lam = 0
		}
		hare = p.step(hare)
		lam++
		if lam > limit {
			return Cycle{}, false
		}
	}

	tortoise, hare = p.Seed, p.Seed
	for i := uint64(0); i < lam; i++ {
		hare = p.step(hare)
	}
	var mu uint64
	for tortoise != hare {
		tortoise = p.step(tortoise)
		hare = p.step(hare)
		mu++
	}

	return Cycle{Tail: mu, Period: lam}, true
}
