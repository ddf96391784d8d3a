package rng

// Source produces values in [0, 1). Both the LCG and the good generators
// satisfy it.
type Source interface {
	Float64() float64
}

// Sequence is an ordered list of draws from a Source.
type Sequence []float64

// Generate draws n values from src. n must be positive.
func Generate(src Source, n int) (Sequence, error) {
	if n <= 0 {
		return nil, newArgumentError("n", n, "must be positive")
	}
	seq := make(Sequence, n)
	for i := range seq {
		seq[i] = src.Float64()
	}
	return seq, nil
}

// GenerateLCG is a convenience that builds an LCG from params and draws n
// values from it. Equal params and n always produce equal sequences.
func GenerateLCG(params LCGParams, n int) (Sequence, error) {
	g, err := NewLCG(params)
	if err != nil {
		return nil, err
	}
	return Generate(g, n)
}
