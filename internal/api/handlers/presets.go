package handlers

import (
	"log"
	"net/http"
	"path/filepath"

	"realestate-sim/internal/api/models"
	"realestate-sim/internal/config"

	"github.com/gin-gonic/gin"
)

// PresetHandler serves the YAML property presets
type PresetHandler struct {
	dir string
}

// NewPresetHandler creates a new preset handler reading from dir
func NewPresetHandler(dir string) *PresetHandler {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	log.Printf("PresetHandler: Using preset directory: %s", dir)
	return &PresetHandler{dir: dir}
}

// Dir returns the preset directory path
func (h *PresetHandler) Dir() string {
	return h.dir
}

// List handles GET /presets
func (h *PresetHandler) List(c *gin.Context) {
	presets, errs := config.ListPresets(h.dir)
	for _, err := range errs {
		log.Printf("PresetHandler: skipping preset: %v", err)
	}
	out := make([]models.PresetInfo, 0, len(presets))
	for _, p := range presets {
		out = append(out, toPresetInfo(p))
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}

// Get handles GET /presets/:id
func (h *PresetHandler) Get(c *gin.Context) {
	p, err := config.FindPreset(h.dir, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewError("NOT_FOUND", err.Error()))
		return
	}
	c.JSON(http.StatusOK, toPresetInfo(p))
}

func toPresetInfo(p config.Preset) models.PresetInfo {
	return models.PresetInfo{
		ID:       p.ID,
		Name:     p.Property.Name,
		File:     filepath.Base(p.File),
		Property: p.Property,
	}
}
