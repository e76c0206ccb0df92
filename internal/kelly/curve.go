package kelly

import (
	"math"

	"kelly-montecarlo/internal/model"
)

// CurvePoint is one sample of the growth curve G(f).
// Growth is -Inf where the fraction is infeasible.
type CurvePoint struct {
	Fraction float64
	Growth   float64
}

// DefaultCurvePoints is the grid size used when callers pass points <= 1.
const DefaultCurvePoints = 200

// GrowthCurve samples G(f) on an evenly spaced grid over [0, fMax].
func GrowthCurve(s model.Setup, fMax float64, points int) []CurvePoint {
	if points <= 1 {
		points = DefaultCurvePoints
	}
	probs, returns := s.Probabilities(), s.Returns()
	step := fMax / float64(points-1)

	out := make([]CurvePoint, points)
	for i := range out {
		f := float64(i) * step
		if i == points-1 {
			f = fMax
		}
		out[i] = CurvePoint{Fraction: f, Growth: growth(probs, returns, f)}
	}
	return out
}

// ChartMax picks an upper fraction for plotting the curves of several setups:
// twice the largest optimum, at least 1.0, and never past the tightest
// solvency bound.
func ChartMax(setups []model.Setup) float64 {
	best := 0.0
	bound := math.Inf(1)
	for _, s := range setups {
		best = math.Max(best, ComputeFraction(s).OptimalFraction)
		bound = math.Min(bound, MaxFraction(s))
	}
	fMax := math.Max(2*best, 1.0)
	if fMax > bound {
		fMax = bound
	}
	return fMax
}
