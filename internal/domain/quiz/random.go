package quiz

import "math/rand/v2"

// NewRand returns a freshly seeded random source. Each test generation
// should use its own source; *rand.Rand is not safe for concurrent use.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Shuffle returns a uniformly permuted copy of items. The input is not modified.
func Shuffle[T any](items []T, rng *rand.Rand) []T {
	out := make([]T, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Sample draws min(k, len(items)) distinct elements uniformly at random
// without replacement. The result is in random order.
func Sample[T any](items []T, k int, rng *rand.Rand) []T {
	if k <= 0 {
		return []T{}
	}
	if k > len(items) {
		k = len(items)
	}
	pool := make([]T, len(items))
	copy(pool, items)
	// Partial Fisher-Yates: the first k slots end up holding the sample.
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
