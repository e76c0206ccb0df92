package handlers

import (
	"errors"
	"net/http"

	"kelly-montecarlo/internal/analytics"
	"kelly-montecarlo/internal/api/models"
	"kelly-montecarlo/internal/config"
	"kelly-montecarlo/internal/kelly"
	"kelly-montecarlo/internal/model"

	"github.com/gin-gonic/gin"
)

// RankHandler ranks setups by growth rate at their optimal fraction
type RankHandler struct {
	presets *PresetHandler
}

// NewRankHandler creates a new rank handler
func NewRankHandler(presets *PresetHandler) *RankHandler {
	return &RankHandler{presets: presets}
}

// RankSetups handles POST /api/v1/kelly/rank
func (h *RankHandler) RankSetups(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	setupCfgs := toSetupConfigs(req.Setups)
	if req.Preset != "" {
		if h.presets == nil {
			respondError(c, http.StatusNotFound, "PRESET_NOT_FOUND", "presets are not available", nil)
			return
		}
		base, err := h.presets.Load(req.Preset)
		if err != nil {
			status, code := http.StatusInternalServerError, "PRESET_ERROR"
			if errors.Is(err, ErrPresetNotFound) {
				status, code = http.StatusNotFound, "PRESET_NOT_FOUND"
			}
			respondError(c, status, code, err.Error(), map[string]interface{}{"preset": req.Preset})
			return
		}
		setupCfgs = config.MergeSetups(base, setupCfgs)
	}
	if len(setupCfgs) == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "preset or setups is required", nil)
		return
	}

	setups := make([]model.Setup, 0, len(setupCfgs))
	for _, sc := range setupCfgs {
		s, err := sc.Build()
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_SETUP", err.Error(),
				map[string]interface{}{"setup": sc.Name})
			return
		}
		setups = append(setups, s)
	}

	c.JSON(http.StatusOK, models.RankResponse{
		Ranking:      analytics.RankByGrowth(kelly.ComputeAll(setups)),
		BlendedKelly: kelly.Blended(setups),
	})
}
