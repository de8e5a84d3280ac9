package pkg

import "math/rand/v2"

// NewRand returns a freshly seeded generator, for callers that want a new one per run.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
