package engine

import "kelly-montecarlo/internal/model"

// LedgerRow is one simulated period of one path, the per-cell record of
// what the engine drew and how the portfolio moved.
type LedgerRow struct {
	Simulation int
	Period     int // 1-based

	Setup    string
	Scenario string

	RawReturn    float64
	Kelly        float64
	GrowthFactor float64

	ValueStart float64
	ValueEnd   float64
}

// Ledger flattens the first maxPaths paths of r into rows. maxPaths <= 0
// means every path.
func Ledger(r *model.SimulationResult, maxPaths int) []LedgerRow {
	n := r.PortfolioValues.Rows
	if maxPaths > 0 && maxPaths < n {
		n = maxPaths
	}
	t := r.PeriodReturns.Cols
	cfg := r.Config

	rows := make([]LedgerRow, 0, n*t)
	for i := 0; i < n; i++ {
		for p := 0; p < t; p++ {
			setup := cfg.Setup(r.SetupIndices.At(i, p))
			k := cfg.EffectiveKelly(setup)
			ret := r.PeriodReturns.At(i, p)
			rows = append(rows, LedgerRow{
				Simulation:   i,
				Period:       p + 1,
				Setup:        setup.Name(),
				Scenario:     setup.Scenario(r.ScenarioIndices.At(i, p)).Name(),
				RawReturn:    ret,
				Kelly:        k,
				GrowthFactor: 1 + k*ret,
				ValueStart:   r.PortfolioValues.At(i, p),
				ValueEnd:     r.PortfolioValues.At(i, p+1),
			})
		}
	}
	return rows
}
