package analytics

import "kelly-montecarlo/internal/model"

// drawdownEpsilon separates a real drawdown from floating noise at a peak.
const drawdownEpsilon = 1e-10

// Drawdowns returns (v - runningMax) / runningMax for every cell of values,
// computed along each row. Every cell is <= 0.
func Drawdowns(values model.Matrix) model.Matrix {
	out := model.NewMatrix(values.Rows, values.Cols)
	for i := 0; i < values.Rows; i++ {
		row := values.Row(i)
		dd := out.Row(i)
		peak := row[0]
		for j, v := range row {
			if v > peak {
				peak = v
			}
			dd[j] = (v - peak) / peak
		}
	}
	return out
}

// InDrawdown marks the cells of a drawdown matrix that are meaningfully
// below their peak.
func InDrawdown(dd model.Matrix) [][]bool {
	out := make([][]bool, dd.Rows)
	for i := range out {
		row := dd.Row(i)
		mask := make([]bool, len(row))
		for j, v := range row {
			mask[j] = v < -drawdownEpsilon
		}
		out[i] = mask
	}
	return out
}

// LongestRun returns, for each row, the length of its longest run of true
// values.
func LongestRun(rows [][]bool) []int {
	out := make([]int, len(rows))
	for i, row := range rows {
		best, cur := 0, 0
		for _, v := range row {
			if !v {
				cur = 0
				continue
			}
			cur++
			if cur > best {
				best = cur
			}
		}
		out[i] = best
	}
	return out
}
