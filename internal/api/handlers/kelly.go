package handlers

import (
	"math"
	"net/http"

	"kelly-montecarlo/internal/api/models"
	"kelly-montecarlo/internal/kelly"
	"kelly-montecarlo/internal/model"
	"kelly-montecarlo/internal/observability"

	"github.com/gin-gonic/gin"
)

// KellyHandler exposes the optimal-fraction solver and growth curves
type KellyHandler struct {
	metrics *observability.Metrics
}

// NewKellyHandler creates a new Kelly handler
func NewKellyHandler(metrics *observability.Metrics) *KellyHandler {
	return &KellyHandler{metrics: metrics}
}

// Solve handles POST /api/v1/kelly
func (h *KellyHandler) Solve(c *gin.Context) {
	var req models.KellyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	setup, err := buildStandaloneSetup(req.Setup)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_SETUP", err.Error(), nil)
		return
	}

	info := kelly.ComputeFraction(setup)
	h.metrics.RecordKellySolve()

	resp := models.KellyResponse{
		KellyInfo:   info,
		MaxFraction: kelly.MaxFraction(setup),
	}
	if req.Fraction != nil {
		f := *req.Fraction
		resp.Fraction = &f
		resp.GrowthAtFraction = finite(kelly.GrowthAt(setup, f))
	}

	c.JSON(http.StatusOK, resp)
}

// Curve handles POST /api/v1/kelly/curve
func (h *KellyHandler) Curve(c *gin.Context) {
	var req models.CurveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	setups := make([]model.Setup, 0, len(req.Setups))
	for _, p := range req.Setups {
		s, err := buildStandaloneSetup(p)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_SETUP", err.Error(),
				map[string]interface{}{"setup": p.Name})
			return
		}
		setups = append(setups, s)
	}

	fMax := req.FMax
	if fMax == 0 {
		fMax = kelly.ChartMax(setups)
	}

	resp := models.CurveResponse{FMax: fMax, Curves: make([]models.CurveSeries, 0, len(setups))}
	for _, s := range setups {
		info := kelly.ComputeFraction(s)
		h.metrics.RecordKellySolve()

		series := models.CurveSeries{
			SetupName:       s.Name(),
			OptimalFraction: info.OptimalFraction,
			OptimalGrowth:   info.ExpectedLogGrowth,
		}
		if f, ok := req.Chosen[s.Name()]; ok {
			chosen := f
			series.ChosenFraction = &chosen
			series.ChosenGrowth = finite(kelly.GrowthAt(s, f))
		}
		for _, pt := range kelly.GrowthCurve(s, fMax, req.Points) {
			series.Points = append(series.Points, models.CurvePoint{
				Fraction: pt.Fraction,
				Growth:   finite(pt.Growth),
			})
		}
		resp.Curves = append(resp.Curves, series)
	}

	c.JSON(http.StatusOK, resp)
}

// buildStandaloneSetup validates a setup outside of any run. A missing
// setup probability is treated as 1 since it does not affect Kelly sizing.
func buildStandaloneSetup(p models.SetupParams) (model.Setup, error) {
	if p.Probability == 0 {
		p.Probability = 1
	}
	return toSetupConfig(p).Build()
}

// finite returns nil for infinities and NaN, which JSON cannot encode.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
