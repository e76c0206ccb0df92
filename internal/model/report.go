package model

// PercentileLevels are the terminal-wealth percentiles reported by analytics.
var PercentileLevels = []int{1, 5, 10, 25, 50, 75, 90, 95, 99}

// KellyInfo summarises the Kelly analysis of one setup.
type KellyInfo struct {
	SetupName         string  `json:"setup_name"`
	OptimalFraction   float64 `json:"optimal_fraction"`
	ExpectedLogGrowth float64 `json:"expected_log_growth"`
	ExpectedReturn    float64 `json:"expected_return"`
	Variance          float64 `json:"variance"`
	Edge              float64 `json:"edge"` // same as ExpectedReturn
	OddsDescription   string  `json:"odds_description"`
}

// AnalyticsReport is the statistical summary of a SimulationResult.
type AnalyticsReport struct {
	TerminalMean        float64         `json:"terminal_mean"`
	TerminalMedian      float64         `json:"terminal_median"`
	TerminalStd         float64         `json:"terminal_std"`
	TerminalPercentiles map[int]float64 `json:"terminal_percentiles"`

	CAGRMean   float64 `json:"cagr_mean"`
	CAGRMedian float64 `json:"cagr_median"`

	Volatility float64 `json:"volatility"`
	Sharpe     float64 `json:"sharpe"`

	MaxDrawdownMean      float64 `json:"max_drawdown_mean"`
	MaxDrawdownMedian    float64 `json:"max_drawdown_median"`
	MaxDrawdownWorst     float64 `json:"max_drawdown_worst"`
	AvgDrawdown          float64 `json:"avg_drawdown"`
	DrawdownDurationMean float64 `json:"drawdown_duration_mean"`
	DrawdownDurationMax  int     `json:"drawdown_duration_max"`

	ProbLoss float64 `json:"prob_loss"`
	ProbRuin float64 `json:"prob_ruin"`

	VaR95  float64 `json:"var_95"`
	CVaR95 float64 `json:"cvar_95"`

	KellyInfo []KellyInfo `json:"kelly_info"`
}
