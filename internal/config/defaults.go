package config

import "kelly-montecarlo/internal/model"

// DefaultSetups are the two regimes a fresh session starts with.
func DefaultSetups() []SetupConfig {
	return []SetupConfig{
		{
			Name:        "Setup A",
			Probability: 0.5,
			Scenarios: []ScenarioConfig{
				{Name: "Win", Probability: 0.6, ReturnPct: 0.20},
				{Name: "Loss", Probability: 0.3, ReturnPct: -0.10},
				{Name: "Stress", Probability: 0.1, ReturnPct: -0.50},
			},
		},
		{
			Name:        "Setup B",
			Probability: 0.5,
			Scenarios: []ScenarioConfig{
				{Name: "Win", Probability: 0.4, ReturnPct: 0.15},
				{Name: "Loss", Probability: 0.45, ReturnPct: -0.08},
				{Name: "Stress", Probability: 0.15, ReturnPct: -0.40},
			},
		},
	}
}

// Default returns a ready-to-run config built from DefaultSetups.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			NumSimulations:       model.DefaultNumSimulations,
			NumPeriods:           model.DefaultNumPeriods,
			InitialCapital:       model.DefaultInitialCapital,
			DefaultKellyFraction: model.DefaultKellyFraction,
		},
		Setups: DefaultSetups(),
	}
}
