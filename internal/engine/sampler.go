package engine

import (
	"math/rand/v2"
	"sort"
)

// categorical draws indices from a discrete distribution by inverse CDF.
type categorical struct {
	cum []float64
}

func newCategorical(probs []float64) categorical {
	cum := make([]float64, len(probs))
	var total float64
	for i, p := range probs {
		total += p
		cum[i] = total
	}
	// Pin the last bucket so rounding never lets a draw fall off the end.
	cum[len(cum)-1] = 1.0
	return categorical{cum: cum}
}

// index maps u in [0, 1) to the first bucket whose cumulative mass is >= u.
func (c categorical) index(u float64) int {
	return sort.SearchFloat64s(c.cum, u)
}

func (c categorical) draw(rng *rand.Rand) int {
	return c.index(rng.Float64())
}

// newRand returns a PCG generator. A configured seed gives a reproducible
// stream; otherwise the generator is seeded from the runtime's entropy.
func newRand(seed int64, seeded bool) *rand.Rand {
	if !seeded {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), pcgStream))
}

// pcgStream is the fixed second PCG seed word for seeded runs.
const pcgStream = 0x9e3779b97f4a7c15
