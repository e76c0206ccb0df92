package handlers

import (
	"net/http"

	"kelly-montecarlo/internal/api/models"
	"kelly-montecarlo/internal/config"
	"kelly-montecarlo/internal/model"

	"github.com/gin-gonic/gin"
)

// ParameterHandler describes configurable parameters and defaults
type ParameterHandler struct{}

// NewParameterHandler creates a new parameter handler
func NewParameterHandler() *ParameterHandler {
	return &ParameterHandler{}
}

// ListParameters handles GET /api/v1/parameters
func (h *ParameterHandler) ListParameters(c *gin.Context) {
	params := []models.ParameterInfo{
		{
			Name:        "num_simulations",
			Type:        "int",
			Description: "Number of independent paths to simulate",
			Default:     model.DefaultNumSimulations,
			Min:         1,
			Max:         config.MaxSimulations,
		},
		{
			Name:        "num_periods",
			Type:        "int",
			Description: "Number of compounding periods per path",
			Default:     model.DefaultNumPeriods,
			Min:         1,
		},
		{
			Name:        "initial_capital",
			Type:        "float",
			Description: "Starting portfolio value; must be positive",
			Default:     model.DefaultInitialCapital,
		},
		{
			Name:        "default_kelly_fraction",
			Type:        "float",
			Description: "Fraction of the raw return applied each period for setups without an override",
			Default:     model.DefaultKellyFraction,
		},
		{
			Name:        "seed",
			Type:        "int",
			Description: "Optional RNG seed; identical seeds reproduce identical runs",
		},
		{
			Name:        "setups[].probability",
			Type:        "float",
			Description: "Chance the setup is active in a period; setup probabilities must sum to 1",
			Min:         0,
			Max:         1,
		},
		{
			Name:        "setups[].kelly_fraction",
			Type:        "float",
			Description: "Optional per-setup override of default_kelly_fraction; must be positive",
		},
		{
			Name:        "setups[].scenarios[].probability",
			Type:        "float",
			Description: "Chance of the scenario given its setup; at least 2 per setup, summing to 1",
			Min:         0,
			Max:         1,
		},
		{
			Name:        "setups[].scenarios[].return_pct",
			Type:        "float",
			Description: "Fractional return, 0.2 means +20%; must be greater than -1",
		},
	}

	c.JSON(http.StatusOK, gin.H{"parameters": params})
}

// GetDefaults handles GET /api/v1/defaults
func (h *ParameterHandler) GetDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, config.Default())
}
