package report

import (
	"fmt"
	"strings"

	"kelly-montecarlo/internal/model"
)

// RenderSummaryCSV renders the scalar report fields as metric,value rows.
func RenderSummaryCSV(rep *model.AnalyticsReport) string {
	var sb strings.Builder
	sb.WriteString("metric,value\n")

	row := func(name string, v float64) {
		sb.WriteString(fmt.Sprintf("%s,%.6f\n", name, v))
	}
	row("terminal_mean", rep.TerminalMean)
	row("terminal_median", rep.TerminalMedian)
	row("terminal_std", rep.TerminalStd)
	for _, p := range model.PercentileLevels {
		row(fmt.Sprintf("terminal_p%d", p), rep.TerminalPercentiles[p])
	}
	row("cagr_mean", rep.CAGRMean)
	row("cagr_median", rep.CAGRMedian)
	row("volatility", rep.Volatility)
	row("sharpe", rep.Sharpe)
	row("max_drawdown_mean", rep.MaxDrawdownMean)
	row("max_drawdown_median", rep.MaxDrawdownMedian)
	row("max_drawdown_worst", rep.MaxDrawdownWorst)
	row("avg_drawdown", rep.AvgDrawdown)
	row("drawdown_duration_mean", rep.DrawdownDurationMean)
	row("drawdown_duration_max", float64(rep.DrawdownDurationMax))
	row("prob_loss", rep.ProbLoss)
	row("prob_ruin", rep.ProbRuin)
	row("var_95", rep.VaR95)
	row("cvar_95", rep.CVaR95)

	return sb.String()
}

// RenderKellyCSV renders one row per setup.
func RenderKellyCSV(infos []model.KellyInfo) string {
	var sb strings.Builder
	sb.WriteString("setup_name,optimal_fraction,expected_log_growth,expected_return,variance\n")
	for _, k := range infos {
		sb.WriteString(fmt.Sprintf("%s,%.6f,%.6f,%.6f,%.6f\n",
			csvField(k.SetupName),
			k.OptimalFraction,
			k.ExpectedLogGrowth,
			k.ExpectedReturn,
			k.Variance,
		))
	}
	return sb.String()
}

// csvField quotes s when it contains a delimiter, quote or newline.
func csvField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
