package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kelly-montecarlo/internal/model"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape. Files ending in .toml are
// decoded as TOML, everything else as YAML.
type Config struct {
	// Optional: load setups from a separate file (e.g. examples/setups/*.yaml).
	// Inline setups override file setups with the same name.
	SetupsFile string           `yaml:"setups_file" toml:"setups_file" json:"setups_file,omitempty"`
	Simulation SimulationConfig `yaml:"simulation" toml:"simulation" json:"simulation"`
	Setups     []SetupConfig    `yaml:"setups" toml:"setups" json:"setups"`
}

type SimulationConfig struct {
	NumSimulations       int     `yaml:"num_simulations" toml:"num_simulations" json:"num_simulations"`
	NumPeriods           int     `yaml:"num_periods" toml:"num_periods" json:"num_periods"`
	InitialCapital       float64 `yaml:"initial_capital" toml:"initial_capital" json:"initial_capital"`
	DefaultKellyFraction float64 `yaml:"default_kelly_fraction" toml:"default_kelly_fraction" json:"default_kelly_fraction"`
	Seed                 *int64  `yaml:"seed" toml:"seed" json:"seed,omitempty"`
}

type SetupConfig struct {
	Name          string           `yaml:"name" toml:"name" json:"name"`
	Probability   float64          `yaml:"probability" toml:"probability" json:"probability"`
	KellyFraction *float64         `yaml:"kelly_fraction" toml:"kelly_fraction" json:"kelly_fraction,omitempty"`
	Scenarios     []ScenarioConfig `yaml:"scenarios" toml:"scenarios" json:"scenarios"`
}

type ScenarioConfig struct {
	Name        string  `yaml:"name" toml:"name" json:"name"`
	Probability float64 `yaml:"probability" toml:"probability" json:"probability"`
	ReturnPct   float64 `yaml:"return_pct" toml:"return_pct" json:"return_pct"`
}

// ErrInvalidConfig is matched by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid config")

// ProblemsError lists every problem found by Check.
type ProblemsError struct {
	Problems []string
}

func (e *ProblemsError) Error() string {
	return "config invalid: " + strings.Join(e.Problems, "; ")
}

func (e *ProblemsError) Is(target error) bool { return target == ErrInvalidConfig }

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it or apply
// defaults. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if c.SetupsFile != "" {
		setupsPath := c.SetupsFile
		if !filepath.IsAbs(setupsPath) {
			// Prefer paths relative to the config file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), setupsPath)
			if _, err := os.Stat(cand); err == nil {
				setupsPath = cand
			}
		}
		loaded, err := LoadSetupsFile(setupsPath)
		if err != nil {
			return nil, err
		}
		c.Setups = MergeSetups(loaded, c.Setups)
	}
	return c, nil
}

// Parse decodes raw config bytes. format is "yaml" or "toml".
func Parse(raw []byte, format string) (*Config, error) {
	var c Config
	if err := decode(raw, format, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

type setupsFileWrapper struct {
	Setups []SetupConfig `yaml:"setups" toml:"setups"`
}

// LoadSetupsFile reads a file holding only a top-level setups list.
func LoadSetupsFile(path string) ([]SetupConfig, error) {
	var w setupsFileWrapper
	if err := decodeFile(path, &w); err != nil {
		return nil, err
	}
	return w.Setups, nil
}

func decodeFile(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := decode(raw, formatOf(path), out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

func decode(raw []byte, format string, out any) error {
	switch format {
	case "toml":
		return toml.Unmarshal(raw, out)
	case "yaml", "":
		return yaml.Unmarshal(raw, out)
	default:
		return fmt.Errorf("unsupported config format %q", format)
	}
}

// ApplyDefaults fills unset (zero) simulation fields.
func (c *Config) ApplyDefaults() {
	s := &c.Simulation
	if s.NumSimulations == 0 {
		s.NumSimulations = model.DefaultNumSimulations
	}
	if s.NumPeriods == 0 {
		s.NumPeriods = model.DefaultNumPeriods
	}
	if s.InitialCapital == 0 {
		s.InitialCapital = model.DefaultInitialCapital
	}
	if s.DefaultKellyFraction == 0 {
		s.DefaultKellyFraction = model.DefaultKellyFraction
	}
}

// Validate reports every Check problem at once, then confirms the config
// passes the stricter model constructors.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if problems := c.Check(); len(problems) > 0 {
		return &ProblemsError{Problems: problems}
	}
	if _, err := c.Build(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Build converts the config into validated model types.
func (c *Config) Build() (*model.SimulationConfig, error) {
	setups := make([]model.Setup, 0, len(c.Setups))
	for i, sc := range c.Setups {
		s, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("setup %d (%s): %w", i, sc.Name, err)
		}
		setups = append(setups, s)
	}

	sim := c.Simulation
	opts := []model.ConfigOption{
		model.WithSimulations(sim.NumSimulations),
		model.WithPeriods(sim.NumPeriods),
		model.WithInitialCapital(sim.InitialCapital),
		model.WithDefaultKelly(sim.DefaultKellyFraction),
	}
	if sim.Seed != nil {
		opts = append(opts, model.WithSeed(*sim.Seed))
	}
	return model.NewSimulationConfig(setups, opts...)
}

func (s SetupConfig) Build() (model.Setup, error) {
	scenarios := make([]model.Scenario, 0, len(s.Scenarios))
	for _, sc := range s.Scenarios {
		built, err := model.NewScenario(sc.Name, sc.Probability, sc.ReturnPct)
		if err != nil {
			return model.Setup{}, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		scenarios = append(scenarios, built)
	}
	var opts []model.SetupOption
	if s.KellyFraction != nil {
		opts = append(opts, model.WithKellyFraction(*s.KellyFraction))
	}
	return model.NewSetup(s.Name, s.Probability, scenarios, opts...)
}

// MergeSimulation overlays non-zero fields from override onto base.
// This is used when applying request or flag overrides to a loaded config.
func MergeSimulation(base, override SimulationConfig) SimulationConfig {
	out := base
	if override.NumSimulations != 0 {
		out.NumSimulations = override.NumSimulations
	}
	if override.NumPeriods != 0 {
		out.NumPeriods = override.NumPeriods
	}
	if override.InitialCapital != 0 {
		out.InitialCapital = override.InitialCapital
	}
	if override.DefaultKellyFraction != 0 {
		out.DefaultKellyFraction = override.DefaultKellyFraction
	}
	if override.Seed != nil {
		seed := *override.Seed
		out.Seed = &seed
	}
	return out
}

// MergeSetups replaces base setups by name with override entries and appends
// overrides that are new, keeping base order first.
func MergeSetups(base, override []SetupConfig) []SetupConfig {
	out := append([]SetupConfig(nil), base...)
	index := make(map[string]int, len(out))
	for i, s := range out {
		index[s.Name] = i
	}
	for _, s := range override {
		if i, ok := index[s.Name]; ok {
			out[i] = s
			continue
		}
		index[s.Name] = len(out)
		out = append(out, s)
	}
	return out
}
