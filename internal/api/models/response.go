package models

import (
	"time"

	"kelly-montecarlo/internal/config"
	"kelly-montecarlo/internal/model"
)

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	ID           string                `json:"id,omitempty"`
	Status       string                `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	BlendedKelly float64               `json:"blended_kelly"`
	Config       config.Config         `json:"config"` // effective config after defaults
	Report       model.AnalyticsReport `json:"report"`
	Bands        *Bands                `json:"bands,omitempty"`
	Ledger       []LedgerRow           `json:"ledger,omitempty"`
}

// Bands holds percentile paths for fan and drawdown charts
type Bands struct {
	Portfolio []Band `json:"portfolio"`
	Drawdown  []Band `json:"drawdown"`
}

// Band is one percentile traced over periods 0..T
type Band struct {
	Percentile float64   `json:"percentile"`
	Values     []float64 `json:"values"`
}

// LedgerRow represents one simulated period of one path
type LedgerRow struct {
	Simulation   int     `json:"simulation"`
	Period       int     `json:"period"`
	Setup        string  `json:"setup"`
	Scenario     string  `json:"scenario"`
	RawReturn    float64 `json:"raw_return"`
	Kelly        float64 `json:"kelly_fraction"`
	GrowthFactor float64 `json:"growth_factor"`
	ValueStart   float64 `json:"value_start"`
	ValueEnd     float64 `json:"value_end"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name         string                `json:"name"`
	BlendedKelly float64               `json:"blended_kelly"`
	Report       model.AnalyticsReport `json:"report"`
}

// RunSummary is one entry of GET /api/v1/simulations
type RunSummary struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	NumSimulations int       `json:"num_simulations"`
	NumPeriods     int       `json:"num_periods"`
	Setups         []string  `json:"setups"`
	TerminalMedian float64   `json:"terminal_median"`
	ProbRuin       float64   `json:"prob_ruin"`
}

// KellyResponse represents the Kelly analysis of one setup
type KellyResponse struct {
	model.KellyInfo
	MaxFraction      float64  `json:"max_fraction"`
	Fraction         *float64 `json:"fraction,omitempty"`
	GrowthAtFraction *float64 `json:"growth_at_fraction,omitempty"` // null when infeasible
}

// CurveResponse holds G(f) samples for each requested setup
type CurveResponse struct {
	FMax   float64       `json:"f_max"`
	Curves []CurveSeries `json:"curves"`
}

// CurveSeries is the growth curve of one setup
type CurveSeries struct {
	SetupName       string       `json:"setup_name"`
	OptimalFraction float64      `json:"optimal_fraction"`
	OptimalGrowth   float64      `json:"optimal_growth"`
	ChosenFraction  *float64     `json:"chosen_fraction,omitempty"`
	ChosenGrowth    *float64     `json:"chosen_growth,omitempty"`
	Points          []CurvePoint `json:"points"`
}

// CurvePoint is G at one fraction; Growth is null where the fraction is infeasible
type CurvePoint struct {
	Fraction float64  `json:"fraction"`
	Growth   *float64 `json:"growth"`
}

// PresetInfo represents a preset setups file
type PresetInfo struct {
	Name         string               `json:"name"`
	File         string               `json:"file"`
	BlendedKelly float64              `json:"blended_kelly"`
	Setups       []config.SetupConfig `json:"setups"`
}

// ParameterInfo describes one configurable simulation parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RankResponse lists setups best first
type RankResponse struct {
	Ranking      []model.KellyInfo `json:"ranking"`
	BlendedKelly float64           `json:"blended_kelly"`
}
