// Package engine generates Monte Carlo portfolio paths for a SimulationConfig.
package engine

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kelly-montecarlo/internal/model"
)

// DefaultMaxCells caps simulations x periods for one run. The four result
// matrices cost roughly 32 bytes per cell.
const DefaultMaxCells = 25_000_000

// ErrTooLarge is returned when a run would exceed the configured cell budget.
var ErrTooLarge = errors.New("simulation too large")

type Engine struct {
	logger   *zap.Logger
	maxCells int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger. A nil logger is replaced by a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxCells overrides DefaultMaxCells. Zero or negative disables the cap.
func WithMaxCells(n int) Option {
	return func(e *Engine) { e.maxCells = n }
}

func New(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop(), maxCells: DefaultMaxCells}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run simulates cfg.NumSimulations() independent paths of cfg.NumPeriods()
// periods each.
//
// Every cell first draws the active setup, then a scenario conditional on that
// setup. All setup draws happen before any scenario draw, and scenario draws
// are made setup by setup in declaration order, visiting cells row-major. A
// seeded config therefore reproduces identical output on every call.
func (e *Engine) Run(cfg *model.SimulationConfig) (*model.SimulationResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("simulation config is nil")
	}

	n, t := cfg.NumSimulations(), cfg.NumPeriods()
	if e.maxCells > 0 && n > e.maxCells/t {
		return nil, fmt.Errorf("%w: %d simulations x %d periods exceeds %d cells", ErrTooLarge, n, t, e.maxCells)
	}

	start := time.Now()
	seed, seeded := cfg.Seed()
	rng := newRand(seed, seeded)

	numSetups := cfg.NumSetups()
	scenarioDists := make([]categorical, numSetups)
	returns := make([][]float64, numSetups)
	kellyBySetup := make([]float64, numSetups)
	for s := 0; s < numSetups; s++ {
		setup := cfg.Setup(s)
		scenarioDists[s] = newCategorical(setup.Probabilities())
		returns[s] = setup.Returns()
		kellyBySetup[s] = cfg.EffectiveKelly(setup)
	}

	cells := n * t
	setupIdx := model.NewIntMatrix(n, t)
	setupDist := newCategorical(cfg.SetupProbabilities())
	counts := make([]int, numSetups)
	for c := 0; c < cells; c++ {
		s := setupDist.draw(rng)
		setupIdx.Data[c] = s
		counts[s]++
	}

	scenarioIdx := model.NewIntMatrix(n, t)
	periodReturns := model.NewMatrix(n, t)
	for s := 0; s < numSetups; s++ {
		if counts[s] == 0 {
			continue
		}
		dist := scenarioDists[s]
		for c := 0; c < cells; c++ {
			if setupIdx.Data[c] != s {
				continue
			}
			k := dist.draw(rng)
			scenarioIdx.Data[c] = k
			periodReturns.Data[c] = returns[s][k]
		}
	}

	initial := cfg.InitialCapital()
	values := model.NewMatrix(n, t+1)
	for i := 0; i < n; i++ {
		row := values.Row(i)
		rets := periodReturns.Row(i)
		setups := setupIdx.Row(i)
		row[0] = initial
		cum := 1.0
		for p := 0; p < t; p++ {
			cum *= 1 + kellyBySetup[setups[p]]*rets[p]
			row[p+1] = initial * cum
		}
	}

	e.logger.Debug("simulation complete",
		zap.Int("simulations", n),
		zap.Int("periods", t),
		zap.Int("setups", numSetups),
		zap.Bool("seeded", seeded),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &model.SimulationResult{
		PortfolioValues: values,
		PeriodReturns:   periodReturns,
		SetupIndices:    setupIdx,
		ScenarioIndices: scenarioIdx,
		Config:          cfg,
	}, nil
}
