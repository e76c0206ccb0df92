package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"kelly-montecarlo/internal/analytics"
	"kelly-montecarlo/internal/chart"
	"kelly-montecarlo/internal/config"
	"kelly-montecarlo/internal/engine"
	"kelly-montecarlo/internal/kelly"
	"kelly-montecarlo/internal/logging"
	"kelly-montecarlo/internal/model"
	"kelly-montecarlo/internal/report"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "simulate":
		err = cmdSimulate(os.Args[2:])
	case "kelly":
		err = cmdKelly(os.Args[2:])
	case "curve":
		err = cmdCurve(os.Args[2:])
	case "validate":
		err = cmdValidate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/run.yaml --seed 42 --out results/ledger.csv --report results/report.md --charts results")
	fmt.Println("  cli kelly --config examples/run.yaml")
	fmt.Println("  cli curve --config examples/run.yaml --setup \"Setup A\" --png results/curve.png")
	fmt.Println("  cli validate --config examples/run.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - without --config the built-in two-setup example is used")
	fmt.Println("  - return_pct values are fractions: 0.2 means +20%")
}

// loadConfig reads path, or the built-in defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func cmdSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML or TOML config (default: built-in example)")
	seed := fs.Int64("seed", 0, "RNG seed (overrides config)")
	sims := fs.Int("sims", 0, "Number of simulations (overrides config)")
	periods := fs.Int("periods", 0, "Number of periods (overrides config)")
	capital := fs.Float64("capital", 0, "Initial capital (overrides config)")
	kellyFrac := fs.Float64("kelly", 0, "Default Kelly fraction (overrides config)")
	outPath := fs.String("out", "", "Optional ledger CSV path")
	paths := fs.Int("paths", 1, "Number of paths written to the ledger")
	reportPath := fs.String("report", "", "Optional Markdown report path")
	summaryPath := fs.String("summary", "", "Optional summary CSV path")
	chartDir := fs.String("charts", "", "Optional directory for PNG charts")
	logLevel := fs.String("log-level", "warn", "Log level")
	_ = fs.Parse(args)

	logger, err := logging.New("", *logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}

	override := config.SimulationConfig{
		NumSimulations:       *sims,
		NumPeriods:           *periods,
		InitialCapital:       *capital,
		DefaultKellyFraction: *kellyFrac,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			override.Seed = seed
		}
	})
	cfg.Simulation = config.MergeSimulation(cfg.Simulation, override)
	if err := cfg.Validate(); err != nil {
		return err
	}

	simCfg, err := cfg.Build()
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := engine.New(engine.WithLogger(logger)).Run(simCfg)
	if err != nil {
		return err
	}
	rep := analytics.Compute(res)
	logger.Info("run finished", zap.Duration("elapsed", time.Since(start)))

	printSummary(simCfg, rep)

	if *outPath != "" {
		if err := ensureDir(*outPath); err != nil {
			return err
		}
		ledger := engine.Ledger(res, *paths)
		if err := engine.WriteLedgerCSV(*outPath, ledger); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows to %s\n", len(ledger), *outPath)
	}
	if *reportPath != "" {
		if err := writeFile(*reportPath, report.RenderMarkdown(simCfg, rep, time.Now().UTC())); err != nil {
			return err
		}
		fmt.Printf("Wrote report to %s\n", *reportPath)
	}
	if *summaryPath != "" {
		if err := writeFile(*summaryPath, report.RenderSummaryCSV(rep)); err != nil {
			return err
		}
		fmt.Printf("Wrote summary to %s\n", *summaryPath)
	}
	if *chartDir != "" {
		if err := writeCharts(*chartDir, simCfg, res, rep); err != nil {
			return err
		}
		fmt.Printf("Wrote charts to %s\n", *chartDir)
	}
	return nil
}

func printSummary(cfg *model.SimulationConfig, rep *model.AnalyticsReport) {
	fmt.Printf("Simulations=%d Periods=%d Initial=%.2f\n", cfg.NumSimulations(), cfg.NumPeriods(), cfg.InitialCapital())
	fmt.Printf("%-22s %12s\n", "metric", "value")
	rows := []struct {
		name  string
		value float64
	}{
		{"terminal_mean", rep.TerminalMean},
		{"terminal_median", rep.TerminalMedian},
		{"terminal_std", rep.TerminalStd},
		{"cagr_mean", rep.CAGRMean},
		{"cagr_median", rep.CAGRMedian},
		{"volatility", rep.Volatility},
		{"sharpe", rep.Sharpe},
		{"max_drawdown_mean", rep.MaxDrawdownMean},
		{"max_drawdown_worst", rep.MaxDrawdownWorst},
		{"prob_loss", rep.ProbLoss},
		{"prob_ruin", rep.ProbRuin},
		{"var_95", rep.VaR95},
		{"cvar_95", rep.CVaR95},
	}
	for _, r := range rows {
		fmt.Printf("%-22s %12.4f\n", r.name, r.value)
	}
	fmt.Println("")
	printKellyTable(rep.KellyInfo)
}

func printKellyTable(infos []model.KellyInfo) {
	fmt.Printf("%-16s %-10s %-10s %-10s %-10s\n", "setup", "f*", "G(f*)", "E[r]", "var")
	for _, k := range infos {
		fmt.Printf("%-16s %-10.4f %-10.6f %-10.4f %-10.4f\n",
			k.SetupName, k.OptimalFraction, k.ExpectedLogGrowth, k.ExpectedReturn, k.Variance)
	}
}

func writeCharts(dir string, cfg *model.SimulationConfig, res *model.SimulationResult, rep *model.AnalyticsReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := chart.FanChart(res, filepath.Join(dir, "fan.png")); err != nil {
		return err
	}
	if err := chart.DrawdownChart(res, filepath.Join(dir, "drawdown.png")); err != nil {
		return err
	}
	if err := chart.TerminalHistogram(res, rep, filepath.Join(dir, "terminal.png"), 50); err != nil {
		return err
	}
	setups := cfg.Setups()
	return chart.GrowthCurves(setups, chosenFractions(cfg), kelly.ChartMax(setups), filepath.Join(dir, "kelly_curves.png"))
}

func chosenFractions(cfg *model.SimulationConfig) map[string]float64 {
	out := make(map[string]float64, cfg.NumSetups())
	for _, s := range cfg.Setups() {
		out[s.Name()] = cfg.EffectiveKelly(s)
	}
	return out
}

func cmdKelly(args []string) error {
	fs := flag.NewFlagSet("kelly", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML or TOML config (default: built-in example)")
	rank := fs.Bool("rank", false, "Order setups by growth at their optimum")
	csvPath := fs.String("csv", "", "Optional CSV output path")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	simCfg, err := cfg.Build()
	if err != nil {
		return err
	}

	setups := simCfg.Setups()
	infos := kelly.ComputeAll(setups)
	if *rank {
		infos = analytics.RankByGrowth(infos)
	}
	printKellyTable(infos)
	fmt.Println("")
	for _, k := range infos {
		fmt.Printf("%s: %s\n", k.SetupName, k.OddsDescription)
	}
	fmt.Printf("\nBlended Kelly=%.4f\n", kelly.Blended(setups))

	if *csvPath != "" {
		if err := writeFile(*csvPath, report.RenderKellyCSV(infos)); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows to %s\n", len(infos), *csvPath)
	}
	return nil
}

func cmdCurve(args []string) error {
	fs := flag.NewFlagSet("curve", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML or TOML config (default: built-in example)")
	setupName := fs.String("setup", "", "Only this setup (default: all)")
	fMax := fs.Float64("fmax", 0, "Upper fraction (default: automatic)")
	points := fs.Int("points", 21, "Number of grid points printed")
	pngPath := fs.String("png", "", "Optional chart output path")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	simCfg, err := cfg.Build()
	if err != nil {
		return err
	}

	var setups []model.Setup
	for _, s := range simCfg.Setups() {
		if *setupName == "" || s.Name() == *setupName {
			setups = append(setups, s)
		}
	}
	if len(setups) == 0 {
		return fmt.Errorf("setup %q not found", *setupName)
	}

	upper := *fMax
	if upper <= 0 {
		upper = kelly.ChartMax(setups)
	}

	for _, s := range setups {
		info := kelly.ComputeFraction(s)
		fmt.Printf("%s (f*=%.4f, G=%.6f)\n", s.Name(), info.OptimalFraction, info.ExpectedLogGrowth)
		fmt.Printf("  %-10s %-12s\n", "f", "G(f)")
		for _, pt := range kelly.GrowthCurve(s, upper, *points) {
			g := "-inf"
			if !math.IsInf(pt.Growth, -1) {
				g = fmt.Sprintf("%.6f", pt.Growth)
			}
			fmt.Printf("  %-10.4f %-12s\n", pt.Fraction, g)
		}
	}

	if *pngPath != "" {
		if err := ensureDir(*pngPath); err != nil {
			return err
		}
		if err := chart.GrowthCurves(setups, chosenFractions(simCfg), upper, *pngPath); err != nil {
			return err
		}
		fmt.Printf("Wrote chart to %s\n", *pngPath)
	}
	return nil
}

func cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML or TOML config")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.LoadUnchecked(*cfgPath)
	if err != nil {
		return err
	}
	cfg.ApplyDefaults()

	if problems := cfg.Check(); len(problems) > 0 {
		fmt.Printf("%s has %d problem(s):\n", *cfgPath, len(problems))
		for _, p := range problems {
			fmt.Printf("  - %s\n", p)
		}
		os.Exit(1)
	}
	if _, err := cfg.Build(); err != nil {
		return err
	}
	fmt.Printf("%s is valid (%d setups)\n", *cfgPath, len(cfg.Setups))
	return nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func writeFile(path, content string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
