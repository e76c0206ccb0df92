// Package analytics summarises a completed simulation into risk and return
// statistics.
package analytics

import (
	"math"

	"kelly-montecarlo/internal/kelly"
	"kelly-montecarlo/internal/model"
)

// ruinThreshold is the fraction of initial capital below which a path is ruined.
const ruinThreshold = 0.1

// Compute derives the AnalyticsReport for r. It draws no randomness.
func Compute(r *model.SimulationResult) *model.AnalyticsReport {
	cfg := r.Config
	initial := cfg.InitialCapital()
	periods := float64(r.PeriodReturns.Cols)
	n := r.PortfolioValues.Rows

	terminal := r.TerminalValues()
	sortedTerminal := sortedCopy(terminal)

	rep := &model.AnalyticsReport{
		TerminalMean:        mean(terminal),
		TerminalMedian:      median(sortedTerminal),
		TerminalStd:         stddev(terminal),
		TerminalPercentiles: make(map[int]float64, len(model.PercentileLevels)),
	}
	for _, p := range model.PercentileLevels {
		rep.TerminalPercentiles[p] = percentileSorted(sortedTerminal, float64(p)/100)
	}

	cagr := make([]float64, n)
	for i, v := range terminal {
		cagr[i] = math.Pow(v/initial, 1/periods) - 1
	}
	rep.CAGRMean = mean(cagr)
	rep.CAGRMedian = median(sortedCopy(cagr))

	rep.Volatility = pathVolatility(r.PortfolioValues)

	if sd := stddev(r.PeriodReturns.Data); sd > 0 {
		rep.Sharpe = mean(r.PeriodReturns.Data) / sd
	}

	fillDrawdowns(rep, r.PortfolioValues)

	var losses, ruins int
	pnl := make([]float64, n)
	for i, v := range terminal {
		if v < initial {
			losses++
		}
		if v < ruinThreshold*initial {
			ruins++
		}
		pnl[i] = v - initial
	}
	rep.ProbLoss = float64(losses) / float64(n)
	rep.ProbRuin = float64(ruins) / float64(n)
	rep.VaR95, rep.CVaR95 = valueAtRisk(pnl)

	rep.KellyInfo = kelly.ComputeAll(cfg.Setups())
	return rep
}

// pathVolatility is the mean over paths of the population std of per-period
// log returns.
func pathVolatility(values model.Matrix) float64 {
	if values.Cols < 2 {
		return 0
	}
	logRets := make([]float64, values.Cols-1)
	var total float64
	for i := 0; i < values.Rows; i++ {
		row := values.Row(i)
		for t := 1; t < len(row); t++ {
			logRets[t-1] = math.Log(row[t] / row[t-1])
		}
		total += stddev(logRets)
	}
	return total / float64(values.Rows)
}

func fillDrawdowns(rep *model.AnalyticsReport, values model.Matrix) {
	dd := Drawdowns(values)

	maxDD := make([]float64, dd.Rows)
	for i := range maxDD {
		maxDD[i] = minOf(dd.Row(i))
	}
	rep.MaxDrawdownMean = mean(maxDD)
	rep.MaxDrawdownMedian = median(sortedCopy(maxDD))
	rep.MaxDrawdownWorst = minOf(maxDD)

	var sum float64
	var count int
	for _, v := range dd.Data {
		if v < -drawdownEpsilon {
			sum += v
			count++
		}
	}
	if count > 0 {
		rep.AvgDrawdown = sum / float64(count)
	}

	runs := LongestRun(InDrawdown(dd))
	var total int
	for _, l := range runs {
		total += l
		if l > rep.DrawdownDurationMax {
			rep.DrawdownDurationMax = l
		}
	}
	rep.DrawdownDurationMean = float64(total) / float64(len(runs))
}

// valueAtRisk returns the 5th percentile of pnl and the mean of the tail at
// or below it. The tail mean falls back to the cutoff when the tail is empty.
func valueAtRisk(pnl []float64) (float64, float64) {
	sorted := sortedCopy(pnl)
	cutoff := percentileSorted(sorted, 0.05)

	var sum float64
	var count int
	for _, v := range sorted {
		if v > cutoff {
			break
		}
		sum += v
		count++
	}
	if count == 0 {
		return cutoff, cutoff
	}
	return cutoff, sum / float64(count)
}
