// Package api wires HTTP routes for the simulator.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"kelly-montecarlo/internal/api/handlers"
	"kelly-montecarlo/internal/api/middleware"
	"kelly-montecarlo/internal/engine"
	"kelly-montecarlo/internal/logging"
	"kelly-montecarlo/internal/observability"
	"kelly-montecarlo/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Deps are the collaborators the router hands to its handlers.
// Any field may be left zero.
type Deps struct {
	Engine      *engine.Engine
	Store       storage.RunStore
	Metrics     *observability.Metrics
	Gatherer    prometheus.Gatherer
	Logger      *zap.Logger
	PresetsDir  string
	StaticDir   string
	CORSOrigins []string
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(d Deps) *gin.Engine {
	d.Logger = logging.OrNop(d.Logger)

	router := gin.New()
	router.Use(middleware.ErrorHandler(d.Logger))
	router.Use(middleware.CORS(d.CORSOrigins...))
	router.Use(middleware.Logger(d.Logger))
	router.Use(middleware.Metrics(d.Metrics))

	presets := handlers.NewPresetHandler(d.PresetsDir, d.Logger)
	simHandler := handlers.NewSimulationHandler(d.Engine, d.Store, presets, d.Metrics, d.Logger)
	kellyHandler := handlers.NewKellyHandler(d.Metrics)
	rankHandler := handlers.NewRankHandler(presets)
	paramHandler := handlers.NewParameterHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(observability.Handler(d.Gatherer)))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulate", simHandler.Simulate)
		v1.POST("/simulate/compare", simHandler.Compare)
		v1.GET("/simulations", simHandler.ListRuns)
		v1.GET("/simulations/:id", simHandler.GetRun)

		v1.POST("/kelly", kellyHandler.Solve)
		v1.POST("/kelly/curve", kellyHandler.Curve)
		v1.POST("/kelly/rank", rankHandler.RankSetups)

		v1.GET("/presets", presets.ListPresets)
		v1.GET("/parameters", paramHandler.ListParameters)
		v1.GET("/defaults", paramHandler.GetDefaults)
	}

	if d.StaticDir != "" {
		serveStatic(router, d.StaticDir, d.Logger)
	}
	return router
}

// serveStatic serves a built single page app, falling back to index.html
// for every non-API path.
func serveStatic(router *gin.Engine, dir string, logger *zap.Logger) {
	if _, err := os.Stat(dir); err != nil {
		logger.Info("static directory not found, skipping", zap.String("dir", dir))
		return
	}
	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	logger.Info("serving static files", zap.String("dir", dir))
}
