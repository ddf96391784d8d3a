package testutil

import "sync"

// ReplaySource yields a fixed list of values in order, wrapping around at
// the end. It satisfies rng.Source so tests can feed a pipeline values
// whose lag pairs are known in advance.
type ReplaySource struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewReplaySource panics if values is empty.
func NewReplaySource(values ...float64) *ReplaySource {
	if len(values) == 0 {
		panic("testutil: ReplaySource needs at least one value")
	}
	return &ReplaySource{values: append([]float64(nil), values...)}
}

// Float64 returns the next value.
func (s *ReplaySource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}
