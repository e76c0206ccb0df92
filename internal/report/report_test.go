package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kelly-montecarlo/internal/analytics"
	"kelly-montecarlo/internal/engine"
	"kelly-montecarlo/internal/model"
)

func sampleRun(t *testing.T) (*model.SimulationConfig, *model.AnalyticsReport) {
	t.Helper()
	s := model.MustSetup("Only", 1.0, []model.Scenario{
		model.MustScenario("Win", 0.6, 0.2),
		model.MustScenario("Loss", 0.4, -0.1),
	})
	cfg, err := model.NewSimulationConfig([]model.Setup{s},
		model.WithSimulations(100), model.WithPeriods(10), model.WithSeed(1))
	require.NoError(t, err)
	res, err := engine.New().Run(cfg)
	require.NoError(t, err)
	return cfg, analytics.Compute(res)
}

func TestRenderMarkdown(t *testing.T) {
	cfg, rep := sampleRun(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	md := RenderMarkdown(cfg, rep, at)
	assert.True(t, strings.HasPrefix(md, "# Kelly Monte Carlo Report\n"))
	assert.Contains(t, md, "Generated: 2024-01-02T03:04:05Z")
	assert.Contains(t, md, "| Seed | 1 |")
	assert.Contains(t, md, "| Only | 1.00 | 0.2500 | Win: 60% chance of +20.0%; Loss: 40% chance of -10.0% |")
	assert.Contains(t, md, "| P99 |")
	assert.Contains(t, md, "## Kelly Analysis")
}

func TestRenderSummaryCSV(t *testing.T) {
	_, rep := sampleRun(t)
	lines := strings.Split(strings.TrimSpace(RenderSummaryCSV(rep)), "\n")

	assert.Equal(t, "metric,value", lines[0])
	// header, 3 terminal moments, percentiles, 14 risk rows
	assert.Len(t, lines, 1+3+len(model.PercentileLevels)+14)
}

func TestRenderKellyCSV(t *testing.T) {
	out := RenderKellyCSV([]model.KellyInfo{
		{SetupName: "Plain", OptimalFraction: 4, ExpectedLogGrowth: 0.05},
		{SetupName: "Bull, strong"},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Plain,4.000000,0.050000,0.000000,0.000000", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], `"Bull, strong",`))
}
