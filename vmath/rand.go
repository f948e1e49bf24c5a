package vmath

// FastRand is a xorshift64 generator, deterministic per seed, not safe for concurrent use
type FastRand struct {
	state uint64
}

// NewFastRand creates a generator, seed 0 is replaced by 1
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n), 0 when n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Range returns a value in [lo, hi]
func (r *FastRand) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Sign returns -1 or +1 with equal odds
func (r *FastRand) Sign() int {
	if r.Next()&1 == 0 {
		return -1
	}
	return 1
}
