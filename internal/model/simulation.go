package model

import "math"

// Defaults applied by NewSimulationConfig when an option is not given.
const (
	DefaultNumSimulations = 10000
	DefaultNumPeriods     = 100
	DefaultInitialCapital = 100.0
	DefaultKellyFraction  = 0.25
)

// SimulationConfig is a validated, immutable description of one Monte Carlo run.
type SimulationConfig struct {
	setups         []Setup
	numSimulations int
	numPeriods     int
	initialCapital float64
	defaultKelly   float64
	seed           int64
	hasSeed        bool
}

// ConfigOption customises a SimulationConfig at construction.
type ConfigOption func(*SimulationConfig)

func WithSimulations(n int) ConfigOption {
	return func(c *SimulationConfig) { c.numSimulations = n }
}

func WithPeriods(n int) ConfigOption {
	return func(c *SimulationConfig) { c.numPeriods = n }
}

func WithInitialCapital(v float64) ConfigOption {
	return func(c *SimulationConfig) { c.initialCapital = v }
}

func WithDefaultKelly(f float64) ConfigOption {
	return func(c *SimulationConfig) { c.defaultKelly = f }
}

// WithSeed makes the run reproducible.
func WithSeed(seed int64) ConfigOption {
	return func(c *SimulationConfig) {
		c.seed = seed
		c.hasSeed = true
	}
}

func NewSimulationConfig(setups []Setup, opts ...ConfigOption) (*SimulationConfig, error) {
	c := &SimulationConfig{
		setups:         append([]Setup(nil), setups...),
		numSimulations: DefaultNumSimulations,
		numPeriods:     DefaultNumPeriods,
		initialCapital: DefaultInitialCapital,
		defaultKelly:   DefaultKellyFraction,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *SimulationConfig) validate() error {
	if len(c.setups) == 0 {
		return invalidf("At least one setup is required")
	}
	var total float64
	for _, s := range c.setups {
		if err := s.validate(); err != nil {
			return err
		}
		total += s.probability
	}
	if !(math.Abs(total-1) <= ProbabilityTolerance) {
		return invalidf("Setup probabilities must sum to 1.0, got %.6f", total)
	}
	if c.numSimulations < 1 {
		return invalidf("Number of simulations must be >= 1, got %d", c.numSimulations)
	}
	if c.numPeriods < 1 {
		return invalidf("Number of periods must be >= 1, got %d", c.numPeriods)
	}
	if !(c.initialCapital > 0) || math.IsInf(c.initialCapital, 0) {
		return invalidf("Initial capital must be positive, got %v", c.initialCapital)
	}
	if !(c.defaultKelly > 0) {
		return invalidf("default_kelly_fraction must be positive, got %v", c.defaultKelly)
	}
	return nil
}

// Setups returns a copy of the setups in declaration order.
func (c *SimulationConfig) Setups() []Setup         { return append([]Setup(nil), c.setups...) }
func (c *SimulationConfig) NumSetups() int          { return len(c.setups) }
func (c *SimulationConfig) Setup(i int) Setup       { return c.setups[i] }
func (c *SimulationConfig) NumSimulations() int     { return c.numSimulations }
func (c *SimulationConfig) NumPeriods() int         { return c.numPeriods }
func (c *SimulationConfig) InitialCapital() float64 { return c.initialCapital }
func (c *SimulationConfig) DefaultKelly() float64   { return c.defaultKelly }

// Seed returns the RNG seed and whether one was configured.
func (c *SimulationConfig) Seed() (int64, bool) { return c.seed, c.hasSeed }

// SetupProbabilities returns setup probabilities in declaration order.
func (c *SimulationConfig) SetupProbabilities() []float64 {
	out := make([]float64, len(c.setups))
	for i, s := range c.setups {
		out[i] = s.probability
	}
	return out
}

// EffectiveKelly is the setup's override if present, else the config default.
func (c *SimulationConfig) EffectiveKelly(s Setup) float64 {
	if f, ok := s.KellyFraction(); ok {
		return f
	}
	return c.defaultKelly
}
