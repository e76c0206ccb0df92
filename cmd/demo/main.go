package main

import (
	"flag"
	"fmt"

	"kelly-montecarlo/internal/analytics"
	"kelly-montecarlo/internal/config"
	"kelly-montecarlo/internal/engine"
	"kelly-montecarlo/internal/kelly"
)

// Demo:
// - Build the two-setup example (or load --config)
// - Solve Kelly for each setup
// - Simulate a small batch and walk the first path period by period
func main() {
	cfgPath := flag.String("config", "", "Path to YAML or TOML config (optional)")
	n := flag.Int("n", 12, "Number of periods of the first path to print")
	sims := flag.Int("sims", 1000, "Number of simulations")
	seed := flag.Int64("seed", 42, "RNG seed")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/ledger.csv)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}
	cfg.Simulation.NumSimulations = *sims
	cfg.Simulation.Seed = seed

	simCfg, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	for _, s := range simCfg.Setups() {
		info := kelly.ComputeFraction(s)
		fmt.Printf("%-10s f*=%.4f  G(f*)=%.6f  using f=%.2f\n", s.Name(), info.OptimalFraction, info.ExpectedLogGrowth, simCfg.EffectiveKelly(s))
		fmt.Printf("           %s\n", info.OddsDescription)
	}
	fmt.Printf("Blended Kelly=%.4f\n\n", kelly.Blended(simCfg.Setups()))

	result, err := engine.New().Run(simCfg)
	if err != nil {
		panic(err)
	}

	ledger := engine.Ledger(result, 1)
	fmt.Printf("Path 0, starting value=%.2f\n", simCfg.InitialCapital())
	for i := 0; i < min(*n, len(ledger)); i++ {
		r := ledger[i]
		fmt.Printf(
			"t=%3d  %-8s %-7s  r=%+7.3f  k=%.2f  x%.4f  value=%9.2f -> %9.2f\n",
			r.Period,
			r.Setup,
			r.Scenario,
			r.RawReturn,
			r.Kelly,
			r.GrowthFactor,
			r.ValueStart,
			r.ValueEnd,
		)
	}

	if *outCSV != "" {
		if err := engine.WriteLedgerCSV(*outCSV, ledger); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	rep := analytics.Compute(result)
	fmt.Printf("\nDone. Median terminal=%.2f  P(loss)=%.3f  P(ruin)=%.3f  worst drawdown=%.3f\n",
		rep.TerminalMedian, rep.ProbLoss, rep.ProbRuin, rep.MaxDrawdownWorst)
}
