package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Good generator kinds.
const (
	KindPCG     = "pcg"
	KindMT19937 = "mt19937"
)

// GoodKinds lists the accepted good generator kinds.
var GoodKinds = []string{KindPCG, KindMT19937}

// PCG wraps the permuted congruential generator from golang.org/x/exp/rand.
type PCG struct {
	r *rand.Rand
}

// NewPCG creates a PCG generator seeded with seed.
func NewPCG(seed uint64) *PCG {
	return &PCG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a value in [0, 1).
func (p *PCG) Float64() float64 {
	return p.r.Float64()
}

// NewGood returns the good generator named by kind, seeded with seed.
// MT19937 takes a 32-bit seed; larger seeds are rejected rather than
// truncated so the recorded seed always reproduces the run.
func NewGood(kind string, seed uint64) (Source, error) {
	switch kind {
	case KindPCG, "":
		return NewPCG(seed), nil
	case KindMT19937:
		if seed > math.MaxUint32 {
			return nil, newArgumentError("seed", seed, "mt19937 seeds must fit in 32 bits")
		}
		return NewMT19937(uint32(seed)), nil
	default:
		return nil, newArgumentError("kind", kind, fmt.Sprintf("must be one of %v", GoodKinds))
	}
}

// EntropySeed reads a 64-bit seed from the operating system's entropy source.
func EntropySeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read entropy: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
