package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicScenarios() []Scenario {
	return []Scenario{
		MustScenario("Win", 0.6, 0.20),
		MustScenario("Loss", 0.3, -0.10),
		MustScenario("Stress", 0.1, -0.50),
	}
}

func TestNewScenario(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		p, r    float64
		wantErr string
	}{
		{name: "valid", label: "Win", p: 0.6, r: 0.2},
		{name: "zero probability", label: "Never", p: 0, r: 0.1},
		{name: "probability above one", label: "Win", p: 1.5, r: 0.2, wantErr: "Probability must be in [0, 1]"},
		{name: "negative probability", label: "Win", p: -0.1, r: 0.2, wantErr: "Probability must be in [0, 1]"},
		{name: "total loss", label: "Wipe", p: 0.5, r: -1.0, wantErr: "Return must be > -100%"},
		{name: "blank name", label: "   ", p: 0.5, r: 0.1, wantErr: "name cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := NewScenario(tt.label, tt.p, tt.r)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalid)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.label, sc.Name())
			assert.Equal(t, tt.p, sc.Probability())
			assert.Equal(t, tt.r, sc.ReturnPct())
		})
	}
}

func TestNewSetup(t *testing.T) {
	s, err := NewSetup("Test", 1.0, basicScenarios())
	require.NoError(t, err)

	assert.InDelta(t, 0.04, s.ExpectedReturn(), 1e-12)
	assert.InDelta(t, 0.0504, s.Variance(), 1e-12)
	_, ok := s.KellyFraction()
	assert.False(t, ok)
	assert.Equal(t, 3, s.NumScenarios())
}

func TestNewSetupRejects(t *testing.T) {
	win := MustScenario("Win", 0.6, 0.2)
	loss := MustScenario("Loss", 0.3, -0.1)

	tests := []struct {
		name      string
		label     string
		p         float64
		scenarios []Scenario
		opts      []SetupOption
		wantErr   string
	}{
		{name: "single scenario", label: "One", p: 1, scenarios: []Scenario{MustScenario("Only", 1, 0.1)}, wantErr: "at least 2 scenarios"},
		{name: "bad sum", label: "Short", p: 1, scenarios: []Scenario{win, loss}, wantErr: "Scenario probabilities must sum to 1.0"},
		{name: "zero probability", label: "Zero", p: 0, scenarios: basicScenarios(), wantErr: "Setup probability must be in (0, 1]"},
		{name: "blank name", label: "", p: 1, scenarios: basicScenarios(), wantErr: "Setup name cannot be empty"},
		{name: "negative kelly", label: "Neg", p: 1, scenarios: basicScenarios(), opts: []SetupOption{WithKellyFraction(-0.5)}, wantErr: "Per-setup kelly_fraction must be positive"},
		{name: "zero kelly", label: "Zero", p: 1, scenarios: basicScenarios(), opts: []SetupOption{WithKellyFraction(0)}, wantErr: "Per-setup kelly_fraction must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSetup(tt.label, tt.p, tt.scenarios, tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetupScenariosIsCopy(t *testing.T) {
	s := MustSetup("Test", 1.0, basicScenarios())
	got := s.Scenarios()
	got[0] = MustScenario("Mutated", 0.6, 0.9)
	assert.Equal(t, "Win", s.Scenario(0).Name())
}

func TestNewSimulationConfig(t *testing.T) {
	a := MustSetup("A", 0.5, basicScenarios())
	b := MustSetup("B", 0.5, basicScenarios(), WithKellyFraction(0.5))

	cfg, err := NewSimulationConfig([]Setup{a, b})
	require.NoError(t, err)
	assert.Equal(t, DefaultNumSimulations, cfg.NumSimulations())
	assert.Equal(t, DefaultNumPeriods, cfg.NumPeriods())
	assert.Equal(t, DefaultInitialCapital, cfg.InitialCapital())
	_, hasSeed := cfg.Seed()
	assert.False(t, hasSeed)

	assert.Equal(t, 0.25, cfg.EffectiveKelly(a))
	assert.Equal(t, 0.5, cfg.EffectiveKelly(b))

	cfg, err = NewSimulationConfig([]Setup{a, b}, WithSeed(42), WithSimulations(10), WithPeriods(5), WithDefaultKelly(1))
	require.NoError(t, err)
	seed, hasSeed := cfg.Seed()
	assert.True(t, hasSeed)
	assert.Equal(t, int64(42), seed)
	assert.Equal(t, 1.0, cfg.EffectiveKelly(a))
}

func TestNewSimulationConfigRejects(t *testing.T) {
	half := MustSetup("Half", 0.5, basicScenarios())
	full := MustSetup("Full", 1.0, basicScenarios())

	tests := []struct {
		name    string
		setups  []Setup
		opts    []ConfigOption
		wantErr string
	}{
		{name: "no setups", wantErr: "At least one setup is required"},
		{name: "bad setup sum", setups: []Setup{half}, wantErr: "Setup probabilities must sum to 1.0"},
		{name: "zero sims", setups: []Setup{full}, opts: []ConfigOption{WithSimulations(0)}, wantErr: "Number of simulations must be >= 1"},
		{name: "zero periods", setups: []Setup{full}, opts: []ConfigOption{WithPeriods(0)}, wantErr: "Number of periods must be >= 1"},
		{name: "zero capital", setups: []Setup{full}, opts: []ConfigOption{WithInitialCapital(0)}, wantErr: "Initial capital must be positive"},
		{name: "zero default kelly", setups: []Setup{full}, opts: []ConfigOption{WithDefaultKelly(0)}, wantErr: "default_kelly_fraction must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSimulationConfig(tt.setups, tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMatrix(t *testing.T) {
	m := NewMatrix(2, 3)
	m.Set(1, 2, 7)
	assert.Equal(t, 7.0, m.At(1, 2))
	assert.Equal(t, []float64{0, 0, 7}, m.Row(1))
	assert.Equal(t, []float64{0, 7}, m.Col(2))
}
