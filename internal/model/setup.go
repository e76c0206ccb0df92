package model

import (
	"math"
	"strings"
)

// ProbabilityTolerance is the absolute tolerance used when checking that a
// probability distribution sums to one.
const ProbabilityTolerance = 1e-6

// Setup is a market regime: a probability of occurring in a period plus a
// conditional distribution over scenarios. An optional Kelly override replaces
// the config-wide default fraction for periods drawn in this setup.
type Setup struct {
	name          string
	probability   float64
	scenarios     []Scenario
	kellyFraction float64
	hasKelly      bool
}

// SetupOption customises a Setup at construction.
type SetupOption func(*Setup)

// WithKellyFraction sets a per-setup Kelly fraction override.
func WithKellyFraction(f float64) SetupOption {
	return func(s *Setup) {
		s.kellyFraction = f
		s.hasKelly = true
	}
}

func NewSetup(name string, probability float64, scenarios []Scenario, opts ...SetupOption) (Setup, error) {
	s := Setup{
		name:        name,
		probability: probability,
		scenarios:   append([]Scenario(nil), scenarios...),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return Setup{}, err
	}
	return s, nil
}

// MustSetup panics on invalid input. Intended for fixtures and presets.
func MustSetup(name string, probability float64, scenarios []Scenario, opts ...SetupOption) Setup {
	s, err := NewSetup(name, probability, scenarios, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Setup) validate() error {
	if strings.TrimSpace(s.name) == "" {
		return invalidf("Setup name cannot be empty")
	}
	if !(s.probability > 0 && s.probability <= 1) {
		return invalidf("Setup probability must be in (0, 1], got %v", s.probability)
	}
	if len(s.scenarios) < 2 {
		return invalidf("Setup %q needs at least 2 scenarios, got %d", s.name, len(s.scenarios))
	}
	for _, sc := range s.scenarios {
		if err := sc.validate(); err != nil {
			return invalidf("Setup %q: %v", s.name, err)
		}
	}
	if total := s.scenarioTotal(); !(math.Abs(total-1) <= ProbabilityTolerance) {
		return invalidf("Scenario probabilities must sum to 1.0, got %.6f", total)
	}
	if s.hasKelly && !(s.kellyFraction > 0) {
		return invalidf("Per-setup kelly_fraction must be positive, got %v", s.kellyFraction)
	}
	return nil
}

func (s Setup) scenarioTotal() float64 {
	var total float64
	for _, sc := range s.scenarios {
		total += sc.probability
	}
	return total
}

func (s Setup) Name() string         { return s.name }
func (s Setup) Probability() float64 { return s.probability }

// Scenarios returns a copy of the scenario list in declaration order.
func (s Setup) Scenarios() []Scenario { return append([]Scenario(nil), s.scenarios...) }

func (s Setup) NumScenarios() int       { return len(s.scenarios) }
func (s Setup) Scenario(i int) Scenario { return s.scenarios[i] }

// KellyFraction returns the override and whether one was set.
func (s Setup) KellyFraction() (float64, bool) { return s.kellyFraction, s.hasKelly }

// Probabilities returns the scenario probabilities in order.
func (s Setup) Probabilities() []float64 {
	out := make([]float64, len(s.scenarios))
	for i, sc := range s.scenarios {
		out[i] = sc.probability
	}
	return out
}

// Returns returns the scenario returns in order.
func (s Setup) Returns() []float64 {
	out := make([]float64, len(s.scenarios))
	for i, sc := range s.scenarios {
		out[i] = sc.returnPct
	}
	return out
}

// ExpectedReturn is sum(p_i * r_i) over scenarios.
func (s Setup) ExpectedReturn() float64 {
	var e float64
	for _, sc := range s.scenarios {
		e += sc.probability * sc.returnPct
	}
	return e
}

// Variance is sum(p_i * (r_i - E)^2) over scenarios.
func (s Setup) Variance() float64 {
	mean := s.ExpectedReturn()
	var v float64
	for _, sc := range s.scenarios {
		d := sc.returnPct - mean
		v += sc.probability * d * d
	}
	return v
}
