package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"realestate-sim/internal/api/models"
	"realestate-sim/internal/model"
	"realestate-sim/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PortfolioHandler handles the saved-portfolio routes
type PortfolioHandler struct {
	sim   *SimulateHandler
	store store.PortfolioStore
	now   func() time.Time
	newID func() string
}

// NewPortfolioHandler creates a new portfolio handler. Simulations run
// through sim so they share its caches, limits and metrics.
func NewPortfolioHandler(sim *SimulateHandler, st store.PortfolioStore) *PortfolioHandler {
	return &PortfolioHandler{
		sim:   sim,
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// List handles GET /portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	entries, err := h.store.List(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	if entries == nil {
		entries = []model.PortfolioEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// Get handles GET /portfolio/:id
func (h *PortfolioHandler) Get(c *gin.Context) {
	entry, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Add handles POST /portfolio. The property is simulated once and stored with
// its headline numbers; the monthly series are not kept.
func (h *PortfolioHandler) Add(c *gin.Context) {
	var q models.SimulatePropertyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_QUERY", err.Error()))
		return
	}
	prop, ok := bindProperty(c)
	if !ok {
		return
	}

	res := h.sim.runProperty(prop, q.Seed)
	entry := model.NewPortfolioEntry(h.newID(), prop, res, h.now())
	if err := h.store.Add(c.Request.Context(), entry); err != nil {
		h.storeError(c, err)
		return
	}
	h.refreshSize(c)
	c.JSON(http.StatusOK, entry)
}

// Clear handles DELETE /portfolio
func (h *PortfolioHandler) Clear(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		h.storeError(c, err)
		return
	}
	h.sim.metrics.SetPortfolioSize(0)
	c.JSON(http.StatusOK, models.StatusResponse{Status: "cleared"})
}

// Simulate handles POST /portfolio/simulate: Monte Carlo over the stored entries.
func (h *PortfolioHandler) Simulate(c *gin.Context) {
	opts, ok := h.sim.bindPortfolioOptions(c)
	if !ok {
		return
	}
	entries, err := h.store.List(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	if len(entries) == 0 {
		c.JSON(http.StatusBadRequest, models.NewError("NO_PROPERTIES", "The saved portfolio is empty"))
		return
	}
	props := make([]model.PropertyInput, len(entries))
	for i, e := range entries {
		props[i] = e.PropertyInput
	}
	c.JSON(http.StatusOK, h.sim.runPortfolio(props, opts))
}

func (h *PortfolioHandler) refreshSize(c *gin.Context) {
	entries, err := h.store.List(c.Request.Context())
	if err == nil {
		h.sim.metrics.SetPortfolioSize(len(entries))
	}
}

func (h *PortfolioHandler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, models.NewError("NOT_FOUND", err.Error()))
	case errors.Is(err, store.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_PROPERTY", err.Error()))
	default:
		log.Printf("PortfolioHandler: store error: %v", err)
		c.JSON(http.StatusInternalServerError, models.NewError("STORE_ERROR", err.Error()))
	}
}
