package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"kelly-montecarlo/internal/api/models"
	"kelly-montecarlo/internal/config"
	"kelly-montecarlo/internal/kelly"
	"kelly-montecarlo/internal/logging"
	"kelly-montecarlo/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrPresetNotFound is returned when a named preset file does not exist.
var ErrPresetNotFound = errors.New("preset not found")

var presetExts = []string{".yaml", ".yml", ".toml"}

// PresetHandler serves setup presets stored as files in a directory
type PresetHandler struct {
	dir    string
	logger *zap.Logger
}

// NewPresetHandler creates a preset handler. An empty dir falls back to
// PRESETS_DIR, then ./examples/setups.
func NewPresetHandler(dir string, logger *zap.Logger) *PresetHandler {
	if dir == "" {
		dir = os.Getenv("PRESETS_DIR")
	}
	if dir == "" {
		dir = filepath.Join("examples", "setups")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	logger = logging.OrNop(logger)
	logger.Info("preset directory", zap.String("dir", dir))
	return &PresetHandler{dir: dir, logger: logger}
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := []models.PresetInfo{}

	entries, err := os.ReadDir(h.dir)
	if err != nil {
		h.logger.Warn("read preset directory", zap.String("dir", h.dir), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"presets": presets})
		return
	}

	for _, entry := range entries {
		name, ok := presetName(entry)
		if !ok {
			continue
		}
		path := filepath.Join(h.dir, entry.Name())
		setups, err := config.LoadSetupsFile(path)
		if err != nil {
			h.logger.Warn("skip invalid preset", zap.String("file", path), zap.Error(err))
			continue
		}
		presets = append(presets, models.PresetInfo{
			Name:         name,
			File:         entry.Name(),
			BlendedKelly: blendedKelly(setups),
			Setups:       setups,
		})
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })

	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

// Load returns the setups of the named preset (file name without extension).
func (h *PresetHandler) Load(name string) ([]config.SetupConfig, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	for _, ext := range presetExts {
		path := filepath.Join(h.dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return config.LoadSetupsFile(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}

func presetName(entry os.DirEntry) (string, bool) {
	if entry.IsDir() {
		return "", false
	}
	ext := filepath.Ext(entry.Name())
	for _, e := range presetExts {
		if strings.EqualFold(ext, e) {
			return strings.TrimSuffix(entry.Name(), ext), true
		}
	}
	return "", false
}

// blendedKelly returns 0 when the setups do not build.
func blendedKelly(setups []config.SetupConfig) float64 {
	built := make([]model.Setup, 0, len(setups))
	for _, sc := range setups {
		s, err := sc.Build()
		if err != nil {
			return 0
		}
		built = append(built, s)
	}
	return kelly.Blended(built)
}
