// Package report renders an AnalyticsReport as Markdown or CSV.
package report

import (
	"fmt"
	"strings"
	"time"

	"kelly-montecarlo/internal/kelly"
	"kelly-montecarlo/internal/model"
)

// RenderMarkdown renders the run parameters and the analytics report.
func RenderMarkdown(cfg *model.SimulationConfig, rep *model.AnalyticsReport, generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Kelly Monte Carlo Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", generatedAt.Format(time.RFC3339)))

	sb.WriteString("## Run Parameters\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Simulations | %d |\n", cfg.NumSimulations()))
	sb.WriteString(fmt.Sprintf("| Periods | %d |\n", cfg.NumPeriods()))
	sb.WriteString(fmt.Sprintf("| Initial Capital | %.2f |\n", cfg.InitialCapital()))
	sb.WriteString(fmt.Sprintf("| Default Kelly Fraction | %.4f |\n", cfg.DefaultKelly()))
	if seed, ok := cfg.Seed(); ok {
		sb.WriteString(fmt.Sprintf("| Seed | %d |\n", seed))
	} else {
		sb.WriteString("| Seed | random |\n")
	}
	sb.WriteString(fmt.Sprintf("| Blended Optimal Kelly | %.4f |\n", kelly.Blended(cfg.Setups())))
	sb.WriteString("\n")

	sb.WriteString("## Setups\n\n")
	sb.WriteString("| Setup | Probability | Kelly Used | Scenarios |\n")
	sb.WriteString("|-------|-------------|------------|-----------|\n")
	for _, s := range cfg.Setups() {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %.4f | %s |\n",
			s.Name(), s.Probability(), cfg.EffectiveKelly(s), kelly.OddsDescription(s)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Terminal Wealth\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Mean | %.2f |\n", rep.TerminalMean))
	sb.WriteString(fmt.Sprintf("| Median | %.2f |\n", rep.TerminalMedian))
	sb.WriteString(fmt.Sprintf("| Std Dev | %.2f |\n", rep.TerminalStd))
	for _, p := range model.PercentileLevels {
		sb.WriteString(fmt.Sprintf("| P%d | %.2f |\n", p, rep.TerminalPercentiles[p]))
	}
	sb.WriteString("\n")

	sb.WriteString("## Risk\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| CAGR Mean | %.2f%% |\n", rep.CAGRMean*100))
	sb.WriteString(fmt.Sprintf("| CAGR Median | %.2f%% |\n", rep.CAGRMedian*100))
	sb.WriteString(fmt.Sprintf("| Volatility | %.4f |\n", rep.Volatility))
	sb.WriteString(fmt.Sprintf("| Sharpe (raw returns) | %.4f |\n", rep.Sharpe))
	sb.WriteString(fmt.Sprintf("| Max Drawdown Mean | %.2f%% |\n", rep.MaxDrawdownMean*100))
	sb.WriteString(fmt.Sprintf("| Max Drawdown Median | %.2f%% |\n", rep.MaxDrawdownMedian*100))
	sb.WriteString(fmt.Sprintf("| Max Drawdown Worst | %.2f%% |\n", rep.MaxDrawdownWorst*100))
	sb.WriteString(fmt.Sprintf("| Avg Drawdown | %.2f%% |\n", rep.AvgDrawdown*100))
	sb.WriteString(fmt.Sprintf("| Drawdown Duration Mean | %.1f |\n", rep.DrawdownDurationMean))
	sb.WriteString(fmt.Sprintf("| Drawdown Duration Max | %d |\n", rep.DrawdownDurationMax))
	sb.WriteString(fmt.Sprintf("| P(Loss) | %.2f%% |\n", rep.ProbLoss*100))
	sb.WriteString(fmt.Sprintf("| P(Ruin) | %.2f%% |\n", rep.ProbRuin*100))
	sb.WriteString(fmt.Sprintf("| VaR 95 | %.2f |\n", rep.VaR95))
	sb.WriteString(fmt.Sprintf("| CVaR 95 | %.2f |\n", rep.CVaR95))
	sb.WriteString("\n")

	sb.WriteString("## Kelly Analysis\n\n")
	if len(rep.KellyInfo) > 0 {
		sb.WriteString("| Setup | Optimal f* | G(f*) | Edge | Variance |\n")
		sb.WriteString("|-------|------------|-------|------|----------|\n")
		for _, k := range rep.KellyInfo {
			sb.WriteString(fmt.Sprintf("| %s | %.4f | %.6f | %.4f | %.6f |\n",
				k.SetupName, k.OptimalFraction, k.ExpectedLogGrowth, k.Edge, k.Variance))
		}
	} else {
		sb.WriteString("No setups analysed.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
