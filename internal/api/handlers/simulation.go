package handlers

import (
	"errors"
	"net/http"
	"time"

	"kelly-montecarlo/internal/analytics"
	"kelly-montecarlo/internal/api/models"
	"kelly-montecarlo/internal/config"
	"kelly-montecarlo/internal/engine"
	"kelly-montecarlo/internal/kelly"
	"kelly-montecarlo/internal/logging"
	"kelly-montecarlo/internal/model"
	"kelly-montecarlo/internal/observability"
	"kelly-montecarlo/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultListLimit = 20

// SimulationHandler handles simulation requests
type SimulationHandler struct {
	engine  *engine.Engine
	store   storage.RunStore
	presets *PresetHandler
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewSimulationHandler creates a new simulation handler. store, presets and
// metrics may be nil; runs are then not persisted and presets are rejected.
func NewSimulationHandler(eng *engine.Engine, store storage.RunStore, presets *PresetHandler, metrics *observability.Metrics, logger *zap.Logger) *SimulationHandler {
	if eng == nil {
		eng = engine.New(engine.WithLogger(logger))
	}
	return &SimulationHandler{
		engine:  eng,
		store:   store,
		presets: presets,
		metrics: metrics,
		logger:  logging.OrNop(logger),
		now:     time.Now,
	}
}

// apiError carries the HTTP status and code for a failed step.
type apiError struct {
	status  int
	code    string
	message string
	details map[string]interface{}
}

func (e *apiError) respond(c *gin.Context) {
	respondError(c, e.status, e.code, e.message, e.details)
}

// outcome is one completed run before it is shaped into a response.
type outcome struct {
	cfg     *config.Config
	result  *model.SimulationResult
	report  *model.AnalyticsReport
	blended float64
}

// Simulate handles POST /api/v1/simulate
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	cfg, apiErr := h.buildConfig(req.Config)
	if apiErr != nil {
		apiErr.respond(c)
		return
	}

	out, apiErr := h.run(cfg)
	if apiErr != nil {
		apiErr.respond(c)
		return
	}

	resp := models.SimulateResponse{
		Status:       "completed",
		CreatedAt:    h.now().UTC(),
		BlendedKelly: out.blended,
		Config:       *out.cfg,
		Report:       *out.report,
	}

	if h.store != nil {
		run := &storage.Run{
			ID:           uuid.NewString(),
			CreatedAt:    resp.CreatedAt,
			Config:       *out.cfg,
			Report:       *out.report,
			BlendedKelly: out.blended,
		}
		if err := h.store.Save(c.Request.Context(), run); err != nil {
			h.logger.Error("save run", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error(), nil)
			return
		}
		h.metrics.RecordRunStored()
		resp.ID = run.ID
	}

	if req.Options.IncludeBands {
		resp.Bands = &models.Bands{
			Portfolio: convertBands(analytics.PortfolioBands(out.result, analytics.DefaultBandLevels)),
			Drawdown:  convertBands(analytics.DrawdownBands(out.result, analytics.DefaultBandLevels)),
		}
	}
	if req.Options.IncludeLedger {
		paths := req.Options.LedgerPaths
		if paths == 0 {
			paths = 1
		}
		resp.Ledger = convertLedger(engine.Ledger(out.result, paths))
	}

	c.JSON(http.StatusOK, resp)
}

// Compare handles POST /api/v1/simulate/compare
func (h *SimulationHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	base, apiErr := h.buildConfig(req.Base)
	if apiErr != nil {
		apiErr.respond(c)
		return
	}

	results := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, v := range req.Variations {
		cfg := &config.Config{
			Simulation: config.MergeSimulation(base.Simulation, toSimulationConfig(v.Simulation)),
			Setups:     config.MergeSetups(base.Setups, toSetupConfigs(v.Setups)),
		}

		out, apiErr := h.run(cfg)
		if apiErr != nil {
			if apiErr.details == nil {
				apiErr.details = map[string]interface{}{}
			}
			apiErr.details["variation"] = v.Name
			apiErr.respond(c)
			return
		}
		results = append(results, models.ComparisonResult{
			Name:         v.Name,
			BlendedKelly: out.blended,
			Report:       *out.report,
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: results})
}

// GetRun handles GET /api/v1/simulations/:id
func (h *SimulationHandler) GetRun(c *gin.Context) {
	if h.store == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "run storage is disabled", nil)
		return
	}
	id := c.Param("id")
	run, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "simulation run not found",
				map[string]interface{}{"id": id})
			return
		}
		h.logger.Error("get run", zap.String("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, run)
}

// ListRuns handles GET /api/v1/simulations
func (h *SimulationHandler) ListRuns(c *gin.Context) {
	var req models.ListRunsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultListLimit
	}

	summaries := []models.RunSummary{}
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"runs": summaries})
		return
	}

	runs, err := h.store.List(c.Request.Context(), req.Limit)
	if err != nil {
		h.logger.Error("list runs", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error(), nil)
		return
	}
	for _, r := range runs {
		names := make([]string, 0, len(r.Config.Setups))
		for _, s := range r.Config.Setups {
			names = append(names, s.Name)
		}
		summaries = append(summaries, models.RunSummary{
			ID:             r.ID,
			CreatedAt:      r.CreatedAt,
			NumSimulations: r.Config.Simulation.NumSimulations,
			NumPeriods:     r.Config.Simulation.NumPeriods,
			Setups:         names,
			TerminalMedian: r.Report.TerminalMedian,
			ProbRuin:       r.Report.ProbRuin,
		})
	}
	c.JSON(http.StatusOK, gin.H{"runs": summaries})
}

// buildConfig turns request params into a config with defaults applied.
// Preset setups come first; request setups override them by name.
func (h *SimulationHandler) buildConfig(rc models.RunConfig) (*config.Config, *apiError) {
	cfg := &config.Config{
		Simulation: toSimulationConfig(rc.Simulation),
		Setups:     toSetupConfigs(rc.Setups),
	}

	if rc.Preset != "" {
		if h.presets == nil {
			return nil, &apiError{status: http.StatusNotFound, code: "PRESET_NOT_FOUND",
				message: "presets are not available"}
		}
		base, err := h.presets.Load(rc.Preset)
		if err != nil {
			if errors.Is(err, ErrPresetNotFound) {
				return nil, &apiError{status: http.StatusNotFound, code: "PRESET_NOT_FOUND",
					message: err.Error(), details: map[string]interface{}{"preset": rc.Preset}}
			}
			return nil, &apiError{status: http.StatusInternalServerError, code: "PRESET_ERROR",
				message: err.Error()}
		}
		cfg.Setups = config.MergeSetups(base, cfg.Setups)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// run validates cfg, simulates it and computes analytics.
func (h *SimulationHandler) run(cfg *config.Config) (*outcome, *apiError) {
	if problems := cfg.Check(); len(problems) > 0 {
		return nil, &apiError{status: http.StatusBadRequest, code: "INVALID_CONFIG",
			message: "configuration has problems", details: map[string]interface{}{"problems": problems}}
	}
	simCfg, err := cfg.Build()
	if err != nil {
		return nil, &apiError{status: http.StatusBadRequest, code: "INVALID_CONFIG", message: err.Error()}
	}

	cells := simCfg.NumSimulations() * simCfg.NumPeriods()
	start := time.Now()
	result, err := h.engine.Run(simCfg)
	if err != nil {
		h.metrics.RecordSimulation("error", 0, time.Since(start).Seconds())
		if errors.Is(err, engine.ErrTooLarge) {
			return nil, &apiError{status: http.StatusRequestEntityTooLarge, code: "SIMULATION_TOO_LARGE",
				message: err.Error(), details: map[string]interface{}{"cells": cells}}
		}
		h.logger.Error("simulation failed", zap.Error(err))
		return nil, &apiError{status: http.StatusInternalServerError, code: "SIMULATION_ERROR", message: err.Error()}
	}
	report := analytics.Compute(result)
	h.metrics.RecordSimulation("ok", cells, time.Since(start).Seconds())

	h.logger.Info("simulation run",
		zap.Int("simulations", simCfg.NumSimulations()),
		zap.Int("periods", simCfg.NumPeriods()),
		zap.Int("setups", simCfg.NumSetups()),
		zap.Float64("terminal_median", report.TerminalMedian),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &outcome{
		cfg:     cfg,
		result:  result,
		report:  report,
		blended: kelly.Blended(simCfg.Setups()),
	}, nil
}
