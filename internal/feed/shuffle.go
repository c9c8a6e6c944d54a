package feed

// mulberry32 is a small seeded PRNG with a fixed algorithm, so shuffles are
// reproducible across runs and processes for the same seed.
type mulberry32 struct {
	state uint32
}

func newMulberry32(seed int64) *mulberry32 {
	if seed == 0 {
		seed = 1
	}
	return &mulberry32{state: uint32(seed)}
}

func (m *mulberry32) next() float64 {
	m.state += 0x6d2b79f5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	t ^= t >> 14
	return float64(t) / 4294967296
}

// Shuffle returns a seeded Fisher-Yates permutation of items. The input slice
// is left untouched. Same seed and same input order yield the same output.
func Shuffle[T any](items []T, seed int64) []T {
	rnd := newMulberry32(seed)
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := int(rnd.next() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
