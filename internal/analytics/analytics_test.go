package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kelly-montecarlo/internal/engine"
	"kelly-montecarlo/internal/model"
)

func flatSetup() model.Setup {
	return model.MustSetup("Flat", 1.0, []model.Scenario{
		model.MustScenario("Up", 0.5, 0.1),
		model.MustScenario("Down", 0.5, -0.1),
	})
}

// handResult builds a result from explicit portfolio paths. Period returns
// are left at zero unless given.
func handResult(t *testing.T, paths [][]float64, returns []float64) *model.SimulationResult {
	t.Helper()
	periods := len(paths[0]) - 1
	cfg, err := model.NewSimulationConfig([]model.Setup{flatSetup()},
		model.WithSimulations(len(paths)), model.WithPeriods(periods), model.WithInitialCapital(paths[0][0]))
	require.NoError(t, err)

	values := model.NewMatrix(len(paths), periods+1)
	for i, p := range paths {
		copy(values.Row(i), p)
	}
	rets := model.NewMatrix(len(paths), periods)
	copy(rets.Data, returns)

	return &model.SimulationResult{
		PortfolioValues: values,
		PeriodReturns:   rets,
		SetupIndices:    model.NewIntMatrix(len(paths), periods),
		ScenarioIndices: model.NewIntMatrix(len(paths), periods),
		Config:          cfg,
	}
}

func twoSetupResult(t *testing.T) *model.SimulationResult {
	t.Helper()
	bull := model.MustSetup("Bull", 0.6, []model.Scenario{
		model.MustScenario("Win", 0.55, 0.25),
		model.MustScenario("Loss", 0.35, -0.12),
		model.MustScenario("Stress", 0.10, -0.45),
	})
	bear := model.MustSetup("Bear", 0.4, []model.Scenario{
		model.MustScenario("Win", 0.30, 0.15),
		model.MustScenario("Loss", 0.50, -0.20),
		model.MustScenario("Stress", 0.20, -0.60),
	})
	cfg, err := model.NewSimulationConfig([]model.Setup{bull, bear},
		model.WithSimulations(1000), model.WithPeriods(50), model.WithSeed(42))
	require.NoError(t, err)

	res, err := engine.New().Run(cfg)
	require.NoError(t, err)
	return res
}

func TestComputeDrawdownStats(t *testing.T) {
	res := handResult(t, [][]float64{
		{100, 110, 99, 88, 120},
		{100, 100, 100, 100, 100},
	}, nil)

	rep := Compute(res)
	assert.InDelta(t, -0.1, rep.MaxDrawdownMean, 1e-12)
	assert.InDelta(t, -0.2, rep.MaxDrawdownWorst, 1e-12)
	assert.InDelta(t, -0.1, rep.MaxDrawdownMedian, 1e-12)
	assert.InDelta(t, -0.15, rep.AvgDrawdown, 1e-12)
	assert.Equal(t, 1.0, rep.DrawdownDurationMean)
	assert.Equal(t, 2, rep.DrawdownDurationMax)
}

func TestComputeTerminalStats(t *testing.T) {
	res := handResult(t, [][]float64{
		{100, 50},
		{100, 100},
		{100, 150},
		{100, 200},
		{100, 250},
	}, nil)

	rep := Compute(res)
	assert.Equal(t, 150.0, rep.TerminalMean)
	assert.Equal(t, 150.0, rep.TerminalMedian)
	assert.InDelta(t, 70.710678118654755, rep.TerminalStd, 1e-9)
	assert.InDelta(t, 60.0, rep.TerminalPercentiles[5], 1e-9)
	assert.InDelta(t, 52.0, rep.TerminalPercentiles[1], 1e-9)
	assert.InDelta(t, 0.2, rep.ProbLoss, 1e-12)
	assert.Equal(t, 0.0, rep.ProbRuin)
	assert.InDelta(t, -40.0, rep.VaR95, 1e-9)
	assert.InDelta(t, -50.0, rep.CVaR95, 1e-9)
	assert.InDelta(t, 0.5, rep.CAGRMedian, 1e-12)
}

func TestComputeSharpe(t *testing.T) {
	res := handResult(t, [][]float64{{100, 120, 120}}, []float64{0.2, 0.0})
	assert.InDelta(t, 1.0, Compute(res).Sharpe, 1e-12)

	flat := handResult(t, [][]float64{{100, 100, 100}}, []float64{0.05, 0.05})
	assert.Equal(t, 0.0, Compute(flat).Sharpe)
}

func TestComputeVolatility(t *testing.T) {
	res := handResult(t, [][]float64{{100, 200, 100}}, nil)
	// log returns are +ln2 and -ln2, population std is ln2.
	assert.InDelta(t, 0.6931471805599453, Compute(res).Volatility, 1e-12)
}

func TestComputeRuin(t *testing.T) {
	res := handResult(t, [][]float64{
		{100, 5},
		{100, 110},
	}, nil)
	rep := Compute(res)
	assert.Equal(t, 0.5, rep.ProbRuin)
	assert.Equal(t, 0.5, rep.ProbLoss)
}

func TestComputeFlatScenarios(t *testing.T) {
	flat := model.MustSetup("Flat", 1.0, []model.Scenario{
		model.MustScenario("A", 0.5, 0),
		model.MustScenario("B", 0.5, 0),
	})
	cfg, err := model.NewSimulationConfig([]model.Setup{flat},
		model.WithSimulations(100), model.WithPeriods(12), model.WithSeed(5))
	require.NoError(t, err)
	res, err := engine.New().Run(cfg)
	require.NoError(t, err)

	rep := Compute(res)
	assert.Equal(t, 0.0, rep.ProbLoss)
	assert.Equal(t, 0.0, rep.ProbRuin)
	assert.Equal(t, 0.0, rep.CAGRMean)
	assert.Equal(t, 0.0, rep.Sharpe)
	assert.Equal(t, 0.0, rep.AvgDrawdown)
	assert.Equal(t, 0.0, rep.DrawdownDurationMean)
	assert.Equal(t, 0.0, rep.TerminalStd)
}

func TestComputeSimulatedInvariants(t *testing.T) {
	res := twoSetupResult(t)
	rep := Compute(res)

	prev := rep.TerminalPercentiles[model.PercentileLevels[0]]
	for _, p := range model.PercentileLevels[1:] {
		cur := rep.TerminalPercentiles[p]
		assert.LessOrEqual(t, prev, cur, "p%d", p)
		prev = cur
	}
	assert.GreaterOrEqual(t, rep.TerminalMedian, rep.TerminalPercentiles[25])
	assert.LessOrEqual(t, rep.TerminalMedian, rep.TerminalPercentiles[75])
	assert.LessOrEqual(t, rep.CVaR95, rep.VaR95)
	assert.LessOrEqual(t, rep.MaxDrawdownWorst, rep.MaxDrawdownMean)
	assert.LessOrEqual(t, rep.MaxDrawdownMean, 0.0)
	assert.GreaterOrEqual(t, rep.ProbLoss, rep.ProbRuin)

	require.Len(t, rep.KellyInfo, 2)
	assert.Equal(t, "Bull", rep.KellyInfo[0].SetupName)
	assert.Equal(t, "Bear", rep.KellyInfo[1].SetupName)
}

func TestRankByGrowth(t *testing.T) {
	infos := []model.KellyInfo{
		{SetupName: "low", ExpectedLogGrowth: 0.01},
		{SetupName: "zero-a"},
		{SetupName: "high", ExpectedLogGrowth: 0.05},
		{SetupName: "zero-b"},
	}
	ranked := RankByGrowth(infos)

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.SetupName
	}
	assert.Equal(t, []string{"high", "low", "zero-a", "zero-b"}, names)
	assert.Equal(t, "low", infos[0].SetupName)
}
