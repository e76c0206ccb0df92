// Package chart renders simulation results to image files with gonum/plot.
// The output format follows the file extension (.png, .svg, .pdf).
package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"kelly-montecarlo/internal/analytics"
	"kelly-montecarlo/internal/kelly"
	"kelly-montecarlo/internal/model"
)

const (
	width  = 8 * vg.Inch
	height = 4 * vg.Inch
)

var (
	medianColor = color.RGBA{R: 0, G: 128, B: 255, A: 255}
	outerBand   = color.RGBA{R: 0, G: 128, B: 255, A: 40}
	innerBand   = color.RGBA{R: 0, G: 128, B: 255, A: 80}
	refColor    = color.RGBA{R: 255, G: 0, B: 0, A: 160}
	dashes      = []vg.Length{vg.Points(5), vg.Points(5)}
)

// FanChart draws the 10-90 and 25-75 percentile bands of portfolio value
// over time with the median path on top.
func FanChart(r *model.SimulationResult, path string) error {
	bands := analytics.PortfolioBands(r, analytics.DefaultBandLevels)

	p := plot.New()
	p.Title.Text = "Portfolio Value Percentiles"
	p.X.Label.Text = "Period"
	p.Y.Label.Text = "Portfolio Value"
	p.Add(plotter.NewGrid())

	if err := addBands(p, bands); err != nil {
		return err
	}
	if err := addReference(p, r.Config.InitialCapital(), float64(r.PortfolioValues.Cols-1), "Initial capital"); err != nil {
		return err
	}
	return save(p, path)
}

// DrawdownChart draws percentile bands of the per-period drawdown.
func DrawdownChart(r *model.SimulationResult, path string) error {
	bands := analytics.DrawdownBands(r, analytics.DefaultBandLevels)
	for i := range bands {
		for j, v := range bands[i].Values {
			bands[i].Values[j] = v * 100
		}
	}

	p := plot.New()
	p.Title.Text = "Drawdown Percentiles"
	p.X.Label.Text = "Period"
	p.Y.Label.Text = "Drawdown (%)"
	p.Add(plotter.NewGrid())

	if err := addBands(p, bands); err != nil {
		return err
	}
	return save(p, path)
}

// TerminalHistogram plots the terminal wealth distribution with the initial
// capital and the 5th/50th/95th percentiles marked.
func TerminalHistogram(r *model.SimulationResult, rep *model.AnalyticsReport, path string, bins int) error {
	if bins <= 0 {
		bins = 50
	}
	h, err := plotter.NewHist(plotter.Values(r.TerminalValues()), bins)
	if err != nil {
		return fmt.Errorf("terminal histogram: %w", err)
	}
	h.FillColor = innerBand
	h.LineStyle.Color = medianColor

	p := plot.New()
	p.Title.Text = "Terminal Wealth Distribution"
	p.X.Label.Text = "Terminal Value"
	p.Y.Label.Text = "Paths"
	p.Add(plotter.NewGrid(), h)

	top := 0.0
	for _, b := range h.Bins {
		top = math.Max(top, b.Weight)
	}

	marks := []struct {
		label string
		x     float64
		color color.Color
	}{
		{"Initial", r.Config.InitialCapital(), refColor},
		{"P5", rep.TerminalPercentiles[5], plotutil.Color(1)},
		{"Median", rep.TerminalMedian, plotutil.Color(2)},
		{"P95", rep.TerminalPercentiles[95], plotutil.Color(3)},
	}
	for _, m := range marks {
		l, err := plotter.NewLine(plotter.XYs{{X: m.x, Y: 0}, {X: m.x, Y: top}})
		if err != nil {
			return err
		}
		l.Color = m.color
		l.Dashes = dashes
		p.Add(l)
		p.Legend.Add(m.label, l)
	}
	p.Legend.Top = true
	return save(p, path)
}

// GrowthCurves plots G(f) per setup over [0, fMax], marking each setup's
// optimal fraction and, when present in chosen, the fraction actually used.
// fMax <= 0 selects kelly.ChartMax.
func GrowthCurves(setups []model.Setup, chosen map[string]float64, fMax float64, path string) error {
	if fMax <= 0 {
		fMax = kelly.ChartMax(setups)
	}

	p := plot.New()
	p.Title.Text = "Expected Log Growth G(f)"
	p.X.Label.Text = "Kelly Fraction"
	p.Y.Label.Text = "G(f)"
	p.Add(plotter.NewGrid())

	for i, s := range setups {
		curve := kelly.GrowthCurve(s, fMax, kelly.DefaultCurvePoints)
		pts := make(plotter.XYs, 0, len(curve))
		for _, c := range curve {
			// Infeasible fractions are left off the curve.
			if math.IsInf(c.Growth, 0) {
				continue
			}
			pts = append(pts, plotter.XY{X: c.Fraction, Y: c.Growth})
		}
		if len(pts) == 0 {
			continue
		}

		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("growth curve %s: %w", s.Name(), err)
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(2)
		p.Add(l)
		p.Legend.Add(s.Name(), l)

		info := kelly.ComputeFraction(s)
		if err := addMarker(p, info.OptimalFraction, info.ExpectedLogGrowth, plotutil.Color(i), draw.CircleGlyph{}); err != nil {
			return err
		}
		if f, ok := chosen[s.Name()]; ok && f <= fMax {
			if g := kelly.GrowthAt(s, f); !math.IsInf(g, 0) {
				if err := addMarker(p, f, g, plotutil.Color(i), draw.TriangleGlyph{}); err != nil {
					return err
				}
			}
		}
	}

	p.Legend.Top = true
	return save(p, path)
}

func addBands(p *plot.Plot, bands []analytics.Band) error {
	byLevel := make(map[float64][]float64, len(bands))
	for _, b := range bands {
		byLevel[b.Percentile] = b.Values
	}

	fills := []struct {
		lo, hi float64
		c      color.Color
		label  string
	}{
		{10, 90, outerBand, "10-90%"},
		{25, 75, innerBand, "25-75%"},
	}
	for _, f := range fills {
		lo, okLo := byLevel[f.lo]
		hi, okHi := byLevel[f.hi]
		if !okLo || !okHi {
			continue
		}
		poly, err := plotter.NewPolygon(bandOutline(lo, hi))
		if err != nil {
			return fmt.Errorf("band %s: %w", f.label, err)
		}
		poly.Color = f.c
		poly.LineStyle.Width = 0
		p.Add(poly)
		p.Legend.Add(f.label, poly)
	}

	if mid, ok := byLevel[50]; ok {
		l, err := plotter.NewLine(series(mid))
		if err != nil {
			return err
		}
		l.Color = medianColor
		l.Width = vg.Points(2)
		p.Add(l)
		p.Legend.Add("Median", l)
	}
	p.Legend.Top = true
	return nil
}

func addReference(p *plot.Plot, y, xMax float64, label string) error {
	l, err := plotter.NewLine(plotter.XYs{{X: 0, Y: y}, {X: xMax, Y: y}})
	if err != nil {
		return err
	}
	l.Color = refColor
	l.Dashes = dashes
	p.Add(l)
	p.Legend.Add(label, l)
	return nil
}

func addMarker(p *plot.Plot, x, y float64, c color.Color, shape draw.GlyphDrawer) error {
	s, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
	if err != nil {
		return err
	}
	s.Color = c
	s.Radius = vg.Points(4)
	s.Shape = shape
	p.Add(s)
	return nil
}

func series(ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i].X = float64(i)
		pts[i].Y = y
	}
	return pts
}

// bandOutline walks the upper edge forward and the lower edge back.
func bandOutline(lo, hi []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, 2*len(hi))
	for i, y := range hi {
		pts = append(pts, plotter.XY{X: float64(i), Y: y})
	}
	for i := len(lo) - 1; i >= 0; i-- {
		pts = append(pts, plotter.XY{X: float64(i), Y: lo[i]})
	}
	return pts
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}
