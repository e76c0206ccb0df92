package kelly

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kelly-montecarlo/internal/model"
)

func setupOf(t *testing.T, name string, pairs ...float64) model.Setup {
	t.Helper()
	require.Zero(t, len(pairs)%2)
	var scenarios []model.Scenario
	for i := 0; i < len(pairs); i += 2 {
		sc, err := model.NewScenario([]string{"Win", "Loss", "Stress", "Other"}[i/2], pairs[i], pairs[i+1])
		require.NoError(t, err)
		scenarios = append(scenarios, sc)
	}
	s, err := model.NewSetup(name, 1.0, scenarios)
	require.NoError(t, err)
	return s
}

func TestComputeFractionClosedForm(t *testing.T) {
	// For two outcomes f* = p/|loss| - q/win = 0.6/0.1 - 0.4/0.2 = 4.
	s := setupOf(t, "Simple", 0.6, 0.20, 0.4, -0.10)
	info := ComputeFraction(s)

	assert.InDelta(t, 4.0, info.OptimalFraction, 1e-3)
	assert.Greater(t, info.ExpectedLogGrowth, 0.0)
	assert.InDelta(t, GrowthAt(s, info.OptimalFraction), info.ExpectedLogGrowth, 1e-9)
	assert.Equal(t, "Simple", info.SetupName)
	assert.Equal(t, info.ExpectedReturn, info.Edge)
}

func TestComputeFractionNonPositiveEdge(t *testing.T) {
	tests := []struct {
		name  string
		pairs []float64
	}{
		{name: "negative edge", pairs: []float64{0.3, 0.10, 0.7, -0.10}},
		{name: "fair bet", pairs: []float64{0.5, 0.10, 0.5, -0.10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ComputeFraction(setupOf(t, tt.name, tt.pairs...))
			assert.Equal(t, 0.0, info.OptimalFraction)
			assert.Equal(t, 0.0, info.ExpectedLogGrowth)
			assert.NotEmpty(t, info.OddsDescription)
		})
	}
}

func TestComputeFractionStaysSolvent(t *testing.T) {
	s := setupOf(t, "Risky", 0.8, 0.50, 0.2, -0.90)
	info := ComputeFraction(s)

	assert.Greater(t, info.OptimalFraction, 0.0)
	assert.Less(t, info.OptimalFraction, 1/0.9)
	assert.False(t, math.IsInf(info.ExpectedLogGrowth, 0))
}

func TestComputeFractionNoDownside(t *testing.T) {
	s := setupOf(t, "Free", 0.5, 0.10, 0.5, 0.0)
	info := ComputeFraction(s)

	// Growth is increasing everywhere, so the solver runs to the cap.
	assert.InDelta(t, uncappedMax, info.OptimalFraction, 1e-3)
	assert.Equal(t, uncappedMax, MaxFraction(s))
}

func TestComputeFractionStats(t *testing.T) {
	s := setupOf(t, "Basic", 0.6, 0.20, 0.3, -0.10, 0.1, -0.50)
	info := ComputeFraction(s)

	assert.InDelta(t, 0.04, info.ExpectedReturn, 1e-12)
	assert.InDelta(t, 0.0504, info.Variance, 1e-12)
	assert.GreaterOrEqual(t, info.OptimalFraction, 0.0)
	assert.Less(t, info.OptimalFraction, 2.0)
}

func TestGrowthAt(t *testing.T) {
	s := setupOf(t, "Basic", 0.6, 0.20, 0.3, -0.10, 0.1, -0.50)

	assert.Equal(t, 0.0, GrowthAt(s, 0))
	assert.True(t, math.IsInf(GrowthAt(s, 3.0), -1))
	assert.True(t, math.IsInf(GrowthAt(s, 2.0), -1))

	want := 0.6*math.Log(1.1) + 0.3*math.Log(0.95) + 0.1*math.Log(0.75)
	assert.InDelta(t, want, GrowthAt(s, 0.5), 1e-12)
}

func TestBlended(t *testing.T) {
	s := setupOf(t, "Simple", 0.6, 0.20, 0.4, -0.10)
	assert.Equal(t, ComputeFraction(s).OptimalFraction, Blended([]model.Setup{s}))

	bull := model.MustSetup("Bull", 0.6, []model.Scenario{
		model.MustScenario("Win", 0.6, 0.20),
		model.MustScenario("Loss", 0.4, -0.10),
	})
	bear := model.MustSetup("Bear", 0.4, []model.Scenario{
		model.MustScenario("Win", 0.3, 0.10),
		model.MustScenario("Loss", 0.7, -0.10),
	})
	want := 0.6 * ComputeFraction(bull).OptimalFraction
	assert.InDelta(t, want, Blended([]model.Setup{bull, bear}), 1e-12)
}

func TestOddsDescription(t *testing.T) {
	s := setupOf(t, "Basic", 0.6, 0.20, 0.3, -0.10, 0.1, -0.50)
	assert.Equal(t,
		"Win: 60% chance of +20.0%; Loss: 30% chance of -10.0%; Stress: 10% chance of -50.0%",
		OddsDescription(s))
}

func TestComputeAllPreservesOrder(t *testing.T) {
	a := model.MustSetup("A", 0.5, []model.Scenario{
		model.MustScenario("Win", 0.5, 0.3),
		model.MustScenario("Loss", 0.5, -0.1),
	})
	b := model.MustSetup("B", 0.5, []model.Scenario{
		model.MustScenario("Win", 0.5, 0.1),
		model.MustScenario("Loss", 0.5, -0.1),
	})
	infos := ComputeAll([]model.Setup{a, b})
	require.Len(t, infos, 2)
	assert.Equal(t, "A", infos[0].SetupName)
	assert.Equal(t, "B", infos[1].SetupName)
}
