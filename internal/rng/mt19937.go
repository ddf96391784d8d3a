package rng

const (
	mtN       = 624
	mtM       = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// MT19937 is the 32-bit Mersenne Twister seeded the way NumPy's legacy
// RandomState seeds it from a single integer.
type MT19937 struct {
	mt  [mtN]uint32
	mti int
}

// NewMT19937 creates a Mersenne Twister seeded with seed.
func NewMT19937(seed uint32) *MT19937 {
	m := &MT19937{}
	m.Seed(seed)
	return m
}

// Seed reinitializes the state.
func (m *MT19937) Seed(seed uint32) {
	m.mt[0] = seed
	for i := 1; i < mtN; i++ {
		m.mt[i] = 1812433253*(m.mt[i-1]^(m.mt[i-1]>>30)) + uint32(i)
	}
	m.mti = mtN
}

// Uint32 returns the next tempered 32-bit output.
func (m *MT19937) Uint32() uint32 {
	if m.mti >= mtN {
		m.twist()
	}

	y := m.mt[m.mti]
	m.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

func (m *MT19937) twist() {
	mag01 := [2]uint32{0, matrixA}
	var kk int
	for kk = 0; kk < mtN-mtM; kk++ {
		y := (m.mt[kk] & upperMask) | (m.mt[kk+1] & lowerMask)
		m.mt[kk] = m.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < mtN-1; kk++ {
		y := (m.mt[kk] & upperMask) | (m.mt[kk+1] & lowerMask)
		m.mt[kk] = m.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
	}
	y := (m.mt[mtN-1] & upperMask) | (m.mt[0] & lowerMask)
	m.mt[mtN-1] = m.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
	m.mti = 0
}

// Float64 returns a 53-bit value in [0, 1) built from two outputs, matching
// NumPy's random_sample.
func (m *MT19937) Float64() float64 {
	a := m.Uint32() >> 5
	b := m.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}
