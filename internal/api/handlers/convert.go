package handlers

import (
	"kelly-montecarlo/internal/analytics"
	"kelly-montecarlo/internal/api/models"
	"kelly-montecarlo/internal/config"
	"kelly-montecarlo/internal/engine"
)

func toSimulationConfig(p models.SimulationParams) config.SimulationConfig {
	return config.SimulationConfig{
		NumSimulations:       p.NumSimulations,
		NumPeriods:           p.NumPeriods,
		InitialCapital:       p.InitialCapital,
		DefaultKellyFraction: p.DefaultKellyFraction,
		Seed:                 p.Seed,
	}
}

func toSetupConfigs(in []models.SetupParams) []config.SetupConfig {
	out := make([]config.SetupConfig, 0, len(in))
	for _, s := range in {
		out = append(out, toSetupConfig(s))
	}
	return out
}

func toSetupConfig(s models.SetupParams) config.SetupConfig {
	sc := config.SetupConfig{
		Name:          s.Name,
		Probability:   s.Probability,
		KellyFraction: s.KellyFraction,
		Scenarios:     make([]config.ScenarioConfig, 0, len(s.Scenarios)),
	}
	for _, scn := range s.Scenarios {
		sc.Scenarios = append(sc.Scenarios, config.ScenarioConfig{
			Name:        scn.Name,
			Probability: scn.Probability,
			ReturnPct:   scn.ReturnPct,
		})
	}
	return sc
}

func convertLedger(rows []engine.LedgerRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(rows))
	for i, r := range rows {
		out[i] = models.LedgerRow{
			Simulation:   r.Simulation,
			Period:       r.Period,
			Setup:        r.Setup,
			Scenario:     r.Scenario,
			RawReturn:    r.RawReturn,
			Kelly:        r.Kelly,
			GrowthFactor: r.GrowthFactor,
			ValueStart:   r.ValueStart,
			ValueEnd:     r.ValueEnd,
		}
	}
	return out
}

func convertBands(in []analytics.Band) []models.Band {
	out := make([]models.Band, len(in))
	for i, b := range in {
		out[i] = models.Band{Percentile: b.Percentile, Values: b.Values}
	}
	return out
}
