// Package kelly computes growth-optimal bet sizes for a single setup.
package kelly

import (
	"fmt"
	"math"
	"strings"

	"kelly-montecarlo/internal/model"
)

const (
	// solvencyEpsilon keeps the search strictly inside the feasible region.
	solvencyEpsilon = 1e-9
	// uncappedMax bounds the search when no scenario can lose money.
	uncappedMax = 10.0
	// zeroClamp is the fraction below which the optimum is reported as 0.
	zeroClamp = 1e-8
)

// ComputeFraction solves for the fraction maximising expected log growth of s.
// Setups without a positive edge always get a fraction of 0.
func ComputeFraction(s model.Setup) model.KellyInfo {
	info := model.KellyInfo{
		SetupName:       s.Name(),
		ExpectedReturn:  s.ExpectedReturn(),
		Variance:        s.Variance(),
		OddsDescription: OddsDescription(s),
	}
	info.Edge = info.ExpectedReturn

	if info.ExpectedReturn <= 0 {
		return info
	}

	probs, returns := s.Probabilities(), s.Returns()
	objective := func(f float64) float64 {
		return -growth(probs, returns, f)
	}

	f, neg := minimizeBounded(objective, 0, MaxFraction(s), defaultXTol)
	if f < zeroClamp {
		return info
	}
	info.OptimalFraction = f
	info.ExpectedLogGrowth = -neg
	return info
}

// MaxFraction is the largest fraction that keeps every outcome solvent.
func MaxFraction(s model.Setup) float64 {
	minReturn := math.Inf(1)
	for _, r := range s.Returns() {
		minReturn = math.Min(minReturn, r)
	}
	if minReturn < 0 {
		return -1/minReturn - solvencyEpsilon
	}
	return uncappedMax
}

// GrowthAt evaluates G(f) = sum(p_i * ln(1 + f*r_i)). It returns -Inf when
// any outcome would leave non-positive capital.
func GrowthAt(s model.Setup, fraction float64) float64 {
	return growth(s.Probabilities(), s.Returns(), fraction)
}

func growth(probs, returns []float64, f float64) float64 {
	var g float64
	for i, r := range returns {
		w := 1 + f*r
		if w <= 0 {
			return math.Inf(-1)
		}
		g += probs[i] * math.Log(w)
	}
	return g
}

// Blended is the probability-weighted optimal fraction across setups.
func Blended(setups []model.Setup) float64 {
	var total float64
	for _, s := range setups {
		total += s.Probability() * ComputeFraction(s).OptimalFraction
	}
	return total
}

// ComputeAll solves every setup, preserving input order.
func ComputeAll(setups []model.Setup) []model.KellyInfo {
	out := make([]model.KellyInfo, len(setups))
	for i, s := range setups {
		out[i] = ComputeFraction(s)
	}
	return out
}

// OddsDescription renders e.g. "Win: 60% chance of +20.0%; Loss: 40% chance of -10.0%".
func OddsDescription(s model.Setup) string {
	parts := make([]string, 0, s.NumScenarios())
	for _, sc := range s.Scenarios() {
		sign := ""
		if sc.ReturnPct() >= 0 {
			sign = "+"
		}
		parts = append(parts, fmt.Sprintf("%s: %.0f%% chance of %s%.1f%%",
			sc.Name(), sc.Probability()*100, sign, sc.ReturnPct()*100))
	}
	return strings.Join(parts, "; ")
}
