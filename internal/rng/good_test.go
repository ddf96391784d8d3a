package rng

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGood_RangeAndMean(t *testing.T) {
	for _, kind := range GoodKinds {
		t.Run(kind, func(t *testing.T) {
			src, err := NewGood(kind, 42)
			require.NoError(t, err)

			seq, err := Generate(src, 10000)
			require.NoError(t, err)

			sum := 0.0
			for i, v := range seq {
				if v < 0 || v >= 1 {
					t.Fatalf("value %d out of range: %v", i, v)
				}
				sum += v
			}
			mean := sum / float64(len(seq))
			// Standard error of the mean is about 0.0029 for n=10000.
			assert.Less(t, math.Abs(mean-0.5), 0.02, "mean %v too far from 0.5", mean)
		})
	}
}

func TestGood_FixedSeedReproducible(t *testing.T) {
	for _, kind := range GoodKinds {
		t.Run(kind, func(t *testing.T) {
			a, err := NewGood(kind, 7)
			require.NoError(t, err)
			b, err := NewGood(kind, 7)
			require.NoError(t, err)

			sa, err := Generate(a, 100)
			require.NoError(t, err)
			sb, err := Generate(b, 100)
			require.NoError(t, err)
			assert.Equal(t, sa, sb)
		})
	}
}

func TestGood_DefaultKindIsPCG(t *testing.T) {
	src, err := NewGood("", 1)
	require.NoError(t, err)
	assert.IsType(t, &PCG{}, src)
}

func TestGood_UnknownKind(t *testing.T) {
	_, err := NewGood("xorshift", 1)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "xorshift")
}

func TestGood_MT19937SeedMustFit32Bits(t *testing.T) {
	_, err := NewGood(KindMT19937, math.MaxUint32+1)
	require.Error(t, err)
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "seed", argErr.Name)

	src, err := NewGood(KindMT19937, math.MaxUint32)
	require.NoError(t, err)
	assert.Equal(t, NewMT19937(math.MaxUint32).Float64(), src.Float64())

	_, err = NewGood(KindPCG, math.MaxUint64)
	assert.NoError(t, err)
}

func TestMT19937_ReferenceOutput(t *testing.T) {
	// First outputs of the reference implementation for seed 5489.
	m := NewMT19937(5489)
	assert.Equal(t, uint32(3499211612), m.Uint32())
	assert.Equal(t, uint32(581869302), m.Uint32())
	assert.Equal(t, uint32(3890346734), m.Uint32())
}

func TestEntropySeed(t *testing.T) {
	a, err := EntropySeed()
	require.NoError(t, err)
	b, err := EntropySeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
