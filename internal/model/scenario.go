package model

import (
	"fmt"
	"strings"
)

// Scenario is one possible per-period outcome of a setup.
//   - Probability: conditional on the setup, 0..1
//   - ReturnPct: fractional return, 0.2 = +20%, must be > -1
type Scenario struct {
	name        string
	probability float64
	returnPct   float64
}

func NewScenario(name string, probability, returnPct float64) (Scenario, error) {
	s := Scenario{name: name, probability: probability, returnPct: returnPct}
	if err := s.validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// MustScenario panics on invalid input. Intended for fixtures and presets.
func MustScenario(name string, probability, returnPct float64) Scenario {
	s, err := NewScenario(name, probability, returnPct)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Scenario) validate() error {
	// Negated comparisons so NaN is rejected too.
	if !(s.probability >= 0 && s.probability <= 1) {
		return invalidf("Probability must be in [0, 1], got %v", s.probability)
	}
	if !(s.returnPct > -1) {
		return invalidf("Return must be > -100%%, got %v", s.returnPct)
	}
	if strings.TrimSpace(s.name) == "" {
		return invalidf("Scenario name cannot be empty")
	}
	return nil
}

func (s Scenario) Name() string         { return s.name }
func (s Scenario) Probability() float64 { return s.probability }
func (s Scenario) ReturnPct() float64   { return s.returnPct }

func (s Scenario) String() string {
	return fmt.Sprintf("%s(p=%.4g, r=%+.4g)", s.name, s.probability, s.returnPct)
}
