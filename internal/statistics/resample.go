package statistics

import (
	crand "crypto/rand"
	"math/rand/v2"
)

//go:generate go tool mockgen -source resample.go -destination mock_index_source_test.go -package statistics

// IndexSource draws integers uniformly from [0, n). *rand.Rand satisfies it.
//
// An IndexSource is owned by a single worker and is never shared between
// goroutines.
type IndexSource interface {
	IntN(n int) int
}

// Seeder returns the generator for the given worker index. The aggregator
// calls it once per worker, from a single goroutine.
type Seeder func(worker int) IndexSource

// EntropySeeder gives every worker a ChaCha8 generator keyed from
// crypto/rand, so two runs with identical inputs produce different draws.
func EntropySeeder() Seeder {
	return func(int) IndexSource {
		var key [32]byte
		_, _ = crand.Read(key[:]) // never fails; aborts the process instead
		return rand.New(rand.NewChaCha8(key))
	}
}

// FixedSeeder derives each worker's generator from seed and the worker index.
// For a fixed seed and worker count the resulting distribution is reproducible.
func FixedSeeder(seed uint64) Seeder {
	return func(worker int) IndexSource {
		return rand.New(rand.NewPCG(seed, uint64(worker)))
	}
}

// Resample fills dst with len(sample) values drawn from sample with
// replacement and returns it. dst is reused when it has enough capacity;
// sample is never modified.
func Resample(dst, sample []float64, src IndexSource) []float64 {
	n := len(sample)
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = sample[src.IntN(n)]
	}
	return dst
}

// mean is the plain arithmetic mean. Callers guarantee len(values) > 0.
func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
