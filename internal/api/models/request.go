package models

// SimulateRequest represents the request body for running a simulation
type SimulateRequest struct {
	Config  RunConfig       `json:"config" binding:"required"`
	Options SimulateOptions `json:"options,omitempty"`
}

// RunConfig contains simulation parameters and setups.
// If Preset is set, its setups are loaded first and Setups override them by name.
type RunConfig struct {
	Preset     string           `json:"preset,omitempty"`
	Simulation SimulationParams `json:"simulation"`
	Setups     []SetupParams    `json:"setups,omitempty" binding:"omitempty,dive"`
}

// SimulationParams defines run-level parameters. Zero values take defaults.
type SimulationParams struct {
	NumSimulations       int     `json:"num_simulations,omitempty"`
	NumPeriods           int     `json:"num_periods,omitempty"`
	InitialCapital       float64 `json:"initial_capital,omitempty"`
	DefaultKellyFraction float64 `json:"default_kelly_fraction,omitempty"`
	Seed                 *int64  `json:"seed,omitempty"`
}

// SetupParams defines one regime
type SetupParams struct {
	Name          string           `json:"name"`
	Probability   float64          `json:"probability"`
	KellyFraction *float64         `json:"kelly_fraction,omitempty"`
	Scenarios     []ScenarioParams `json:"scenarios"`
}

// ScenarioParams defines one outcome of a setup
type ScenarioParams struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	ReturnPct   float64 `json:"return_pct"`
}

// SimulateOptions contains optional output controls
type SimulateOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"`                                 // default: false
	LedgerPaths   int  `json:"ledger_paths,omitempty" binding:"omitempty,gte=1,lte=100"` // default: 1
	IncludeBands  bool `json:"include_bands,omitempty"`                                  // default: false
}

// CompareRequest represents a request to compare variations of one base config
type CompareRequest struct {
	Base       RunConfig   `json:"base" binding:"required"`
	Variations []Variation `json:"variations" binding:"required,min=1,dive"`
}

// Variation overrides simulation params and/or setups of the base config
type Variation struct {
	Name       string           `json:"name" binding:"required"`
	Simulation SimulationParams `json:"simulation,omitempty"`
	Setups     []SetupParams    `json:"setups,omitempty"`
}

// KellyRequest asks for the optimal fraction of a single setup.
// Probability may be omitted; it does not affect the result.
type KellyRequest struct {
	Setup    SetupParams `json:"setup" binding:"required"`
	Fraction *float64    `json:"fraction,omitempty"` // optional: also evaluate G at this fraction
}

// CurveRequest asks for G(f) curves of one or more setups
type CurveRequest struct {
	Setups []SetupParams      `json:"setups" binding:"required,min=1"`
	FMax   float64            `json:"f_max,omitempty" binding:"omitempty,gt=0"`
	Points int                `json:"points,omitempty" binding:"omitempty,gte=2,lte=5000"`
	Chosen map[string]float64 `json:"chosen,omitempty"` // setup name -> fraction in use
}

// ListRunsRequest holds query params for GET /api/v1/simulations
type ListRunsRequest struct {
	Limit int `form:"limit,omitempty" binding:"omitempty,gte=1,lte=500"` // default: 20
}

// RankRequest asks for setups ordered by expected log growth at their optimum
type RankRequest struct {
	Preset string        `json:"preset,omitempty"`
	Setups []SetupParams `json:"setups,omitempty" binding:"omitempty,dive"`
}
