package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kelly-montecarlo/internal/model"
)

func TestLongestRun(t *testing.T) {
	const T, F = true, false

	tests := []struct {
		name string
		row  []bool
		want int
	}{
		{name: "all false", row: []bool{F, F, F, F}, want: 0},
		{name: "all true", row: []bool{T, T, T, T, T}, want: 5},
		{name: "interior longest", row: []bool{T, T, F, T, T, T}, want: 3},
		{name: "touches start", row: []bool{T, T, T, F, T, F}, want: 3},
		{name: "touches end", row: []bool{F, T, F, T, T, T, T}, want: 4},
		{name: "empty", row: []bool{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []int{tt.want}, LongestRun([][]bool{tt.row}))
		})
	}
}

func TestLongestRunMatrix(t *testing.T) {
	got := LongestRun([][]bool{
		{true, true, false, true, true, true},
		{false, false, false, false, false, false},
		{true, true, true, true, true, true},
	})
	assert.Equal(t, []int{3, 0, 6}, got)
}

func TestDrawdowns(t *testing.T) {
	values := model.NewMatrix(1, 5)
	copy(values.Data, []float64{100, 110, 99, 88, 120})

	dd := Drawdowns(values)
	want := []float64{0, 0, -0.1, -0.2, 0}
	for j, w := range want {
		assert.InDelta(t, w, dd.At(0, j), 1e-12)
	}
	assert.Equal(t, [][]bool{{false, false, true, true, false}}, InDrawdown(dd))
}

func TestBands(t *testing.T) {
	m := model.NewMatrix(5, 2)
	copy(m.Data, []float64{
		100, 10,
		100, 20,
		100, 30,
		100, 40,
		100, 50,
	})

	bands := Bands(m, []float64{0, 50, 100})
	assert.Len(t, bands, 3)
	assert.Equal(t, []float64{100, 10}, bands[0].Values)
	assert.Equal(t, []float64{100, 30}, bands[1].Values)
	assert.Equal(t, []float64{100, 50}, bands[2].Values)
	assert.Equal(t, 50.0, bands[1].Percentile)
}

func TestPercentileSorted(t *testing.T) {
	vals := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, percentileSorted(vals, 0))
	assert.Equal(t, 4.0, percentileSorted(vals, 1))
	assert.InDelta(t, 2.5, percentileSorted(vals, 0.5), 1e-12)
	assert.InDelta(t, 1.3, percentileSorted(vals, 0.1), 1e-12)
	assert.Equal(t, 0.0, percentileSorted(nil, 0.5))
}
