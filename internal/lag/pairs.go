// Package lag builds lag-1 coordinate pairs from a generated sequence.
package lag

import (
	"fmt"

	"gonum.org/v1/plot/plotter"

	"github.com/roach88/lagplot/internal/rng"
)

var _ plotter.XYer = Pairs{}

// Pairs holds the points (X[i], Y[i]) = (S[i], S[i+1]) of a sequence S.
// X and Y always have equal length, one less than the source.
type Pairs struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// New builds the lag-1 pairs of seq. X and Y are copies, so later changes to
// seq do not show through. A sequence shorter than two values has no pairs
// and is rejected.
func New(seq rng.Sequence) (Pairs, error) {
	if len(seq) < 2 {
		return Pairs{}, fmt.Errorf("lag pairs: %w", &rng.ArgumentError{
			Name:   "len",
			Value:  fmt.Sprint(len(seq)),
			Reason: "sequence needs at least 2 values",
		})
	}

	n := len(seq) - 1
	p := Pairs{
		X: make([]float64, n),
		Y: make([]float64, n),
	}
	copy(p.X, seq[:n])
	copy(p.Y, seq[1:])
	return p, nil
}

// Len returns the number of points.
func (p Pairs) Len() int {
	return len(p.X)
}

// XY returns point i.
func (p Pairs) XY(i int) (x, y float64) {
	return p.X[i], p.Y[i]
}
