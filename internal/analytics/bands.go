package analytics

import "kelly-montecarlo/internal/model"

// DefaultBandLevels are the percentiles drawn on fan charts.
var DefaultBandLevels = []float64{10, 25, 50, 75, 90}

// Band is one percentile traced across every column of a path matrix.
type Band struct {
	Percentile float64   `json:"percentile"`
	Values     []float64 `json:"values"`
}

// Bands computes, for each requested percentile (0..100), its value in every
// column of m.
func Bands(m model.Matrix, levels []float64) []Band {
	out := make([]Band, len(levels))
	for k, lvl := range levels {
		out[k] = Band{Percentile: lvl, Values: make([]float64, m.Cols)}
	}
	for j := 0; j < m.Cols; j++ {
		col := sortedCopy(m.Col(j))
		for k, lvl := range levels {
			out[k].Values[j] = percentileSorted(col, lvl/100)
		}
	}
	return out
}

// PortfolioBands is Bands over the portfolio value paths.
func PortfolioBands(r *model.SimulationResult, levels []float64) []Band {
	return Bands(r.PortfolioValues, levels)
}

// DrawdownBands is Bands over the per-cell drawdown matrix.
func DrawdownBands(r *model.SimulationResult, levels []float64) []Band {
	return Bands(Drawdowns(r.PortfolioValues), levels)
}
