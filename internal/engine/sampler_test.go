package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoricalIndex(t *testing.T) {
	c := newCategorical([]float64{0.2, 0.3, 0.5})

	assert.Equal(t, 1.0, c.cum[2])
	assert.Equal(t, 0, c.index(0))
	assert.Equal(t, 0, c.index(0.2))
	assert.Equal(t, 1, c.index(0.2000001))
	assert.Equal(t, 1, c.index(0.5))
	assert.Equal(t, 2, c.index(0.9999999))
}

func TestCategoricalPinsLastBucket(t *testing.T) {
	// 0.1 * 10 accumulates to slightly less than 1 in float64.
	probs := make([]float64, 10)
	for i := range probs {
		probs[i] = 0.1
	}
	c := newCategorical(probs)
	assert.Equal(t, 1.0, c.cum[9])
	assert.Equal(t, 9, c.index(math.Nextafter(1, 0)))
}

func TestCategoricalFrequencies(t *testing.T) {
	c := newCategorical([]float64{0.25, 0.75})
	rng := newRand(11, true)

	counts := make([]int, 2)
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[c.draw(rng)]++
	}
	assert.InDelta(t, 0.25, float64(counts[0])/draws, 0.02)
}

func TestNewRandSeeded(t *testing.T) {
	a, b := newRand(5, true), newRand(5, true)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}
