package config

import (
	"fmt"
	"math"
	"strings"
)

// MaxSimulations is the soft upper bound enforced by Check.
const MaxSimulations = 1_000_000

// checkTolerance is looser than the model's so Check warns only about
// distributions that are clearly off.
const checkTolerance = 1e-4

// Check collects human-readable problems without failing fast. An empty
// result means the config is worth handing to Build.
func (c *Config) Check() []string {
	var problems []string
	sim := c.Simulation

	if sim.NumSimulations < 1 {
		problems = append(problems, "Number of simulations must be >= 1")
	}
	if sim.NumSimulations > MaxSimulations {
		problems = append(problems, "Number of simulations exceeds 1,000,000 limit")
	}
	if sim.NumPeriods < 1 {
		problems = append(problems, "Number of periods must be >= 1")
	}
	if !(sim.InitialCapital > 0) {
		problems = append(problems, "Initial capital must be positive")
	}
	if !(sim.DefaultKellyFraction > 0) {
		problems = append(problems, fmt.Sprintf("default_kelly_fraction must be positive, got %v", sim.DefaultKellyFraction))
	}

	if len(c.Setups) == 0 {
		problems = append(problems, "At least one setup is required")
	}

	var total float64
	for _, s := range c.Setups {
		total += s.Probability
	}
	if math.Abs(total-1) > checkTolerance {
		problems = append(problems, fmt.Sprintf("Setup probabilities sum to %.4f, must equal 1.0", total))
	}

	for _, s := range c.Setups {
		for _, p := range s.Check() {
			problems = append(problems, fmt.Sprintf("[%s] %s", s.Name, p))
		}
		for _, p := range s.checkLeverage(sim.DefaultKellyFraction) {
			problems = append(problems, fmt.Sprintf("[%s] %s", s.Name, p))
		}
	}
	return problems
}

// checkLeverage flags scenarios where the effective fraction times the
// return reaches -1, which would leave a path with zero or negative capital.
func (s SetupConfig) checkLeverage(defaultKelly float64) []string {
	k := defaultKelly
	if s.KellyFraction != nil {
		k = *s.KellyFraction
	}
	if !(k > 0) {
		return nil
	}

	var problems []string
	for _, sc := range s.Scenarios {
		if sc.ReturnPct <= -1 {
			continue
		}
		if k*sc.ReturnPct <= -1 {
			problems = append(problems, fmt.Sprintf("Kelly fraction %v would wipe out capital on scenario %s (return %v)", k, sc.Name, sc.ReturnPct))
		}
	}
	return problems
}

// Check lists the problems of a single setup and its scenarios.
func (s SetupConfig) Check() []string {
	var problems []string

	if strings.TrimSpace(s.Name) == "" {
		problems = append(problems, "Setup name cannot be empty")
	}
	if !(s.Probability > 0 && s.Probability <= 1) {
		problems = append(problems, fmt.Sprintf("Setup probability %v not in (0, 1]", s.Probability))
	}
	if len(s.Scenarios) < 2 {
		problems = append(problems, "Setup must have at least 2 scenarios")
	}

	var total float64
	for _, sc := range s.Scenarios {
		total += sc.Probability
	}
	if len(s.Scenarios) > 0 && math.Abs(total-1) > checkTolerance {
		problems = append(problems, fmt.Sprintf("Scenario probabilities sum to %.4f, must equal 1.0", total))
	}

	for _, sc := range s.Scenarios {
		for _, p := range sc.Check() {
			problems = append(problems, fmt.Sprintf("[%s] %s", sc.Name, p))
		}
	}

	if s.KellyFraction != nil && !(*s.KellyFraction > 0) {
		problems = append(problems, fmt.Sprintf("Per-setup kelly_fraction must be positive, got %v", *s.KellyFraction))
	}
	return problems
}

// Check lists the problems of a single scenario.
func (sc ScenarioConfig) Check() []string {
	var problems []string
	if !(sc.Probability >= 0 && sc.Probability <= 1) {
		problems = append(problems, fmt.Sprintf("Probability %v not in [0, 1]", sc.Probability))
	}
	if !(sc.ReturnPct > -1) {
		problems = append(problems, fmt.Sprintf("Return %v would cause total loss (must be > -100%%)", sc.ReturnPct))
	}
	if strings.TrimSpace(sc.Name) == "" {
		problems = append(problems, "Scenario name cannot be empty")
	}
	return problems
}
