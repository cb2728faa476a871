package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"realestate-sim/internal/api/models"
	"realestate-sim/internal/config"
	"realestate-sim/internal/data"
	"realestate-sim/internal/model"
	"realestate-sim/internal/observability"
	"realestate-sim/internal/simulation"
	"realestate-sim/internal/stochastic"

	"github.com/gin-gonic/gin"
)

// ResultCaches holds the seeded-result caches. Either field may be nil.
type ResultCaches struct {
	Property  *data.ResultCache[*model.SimulationResult]
	Portfolio *data.ResultCache[*model.PortfolioSimulationResult]
}

// SimulateHandler handles simulation requests
type SimulateHandler struct {
	engine  *simulation.Engine
	cfg     config.SimulationConfig
	caches  ResultCaches
	metrics *observability.Metrics
}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler(engine *simulation.Engine, cfg config.SimulationConfig, caches ResultCaches, metrics *observability.Metrics) *SimulateHandler {
	return &SimulateHandler{engine: engine, cfg: cfg, caches: caches, metrics: metrics}
}

// SimulateProperty handles POST /simulate/property
func (h *SimulateHandler) SimulateProperty(c *gin.Context) {
	var q models.SimulatePropertyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_QUERY",
				Message: err.Error(),
			},
		})
		return
	}
	prop, ok := bindProperty(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.runProperty(prop, q.Seed))
}

// runProperty simulates prop, serving seeded requests from the cache.
func (h *SimulateHandler) runProperty(prop model.PropertyInput, seed *uint64) *model.SimulationResult {
	start := time.Now()
	var key string
	if seed != nil && h.caches.Property != nil {
		if k, err := data.CacheKey("property", prop, 1, *seed); err == nil {
			key = k
			if res, hit := h.caches.Property.Get(key); hit {
				h.metrics.ObserveCache(true)
				return res
			}
			h.metrics.ObserveCache(false)
		}
	}

	res := h.engine.SimulateProperty(prop, seed)
	if res.IRRMonthly == 0 {
		h.metrics.ObserveUndefinedIRR()
	}
	if key != "" {
		h.caches.Property.Set(key, res)
	}
	h.metrics.ObserveSimulation("property", start, 0)
	return res
}

// SimulatePortfolio handles POST /simulate/portfolio
func (h *SimulateHandler) SimulatePortfolio(c *gin.Context) {
	opts, ok := h.bindPortfolioOptions(c)
	if !ok {
		return
	}

	var body struct {
		Properties []json.RawMessage `json:"properties"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}
	if len(body.Properties) == 0 {
		c.JSON(http.StatusBadRequest, models.NewError("NO_PROPERTIES", "At least one property is required"))
		return
	}
	props, err := decodeProperties(body.Properties)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PROPERTY",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, h.runPortfolio(props, opts))
}

// runPortfolio aggregates props. The seed is resolved here so that the
// response always reports the seed that reproduces it.
func (h *SimulateHandler) runPortfolio(props []model.PropertyInput, opts simulation.PortfolioOptions) *model.PortfolioSimulationResult {
	start := time.Now()
	explicit := opts.Seed != nil
	seed := stochastic.ResolveSeed(opts.Seed)
	opts.Seed = &seed

	var key string
	if explicit && h.caches.Portfolio != nil {
		if k, err := data.CacheKey("portfolio", props, opts.Simulations, seed); err == nil {
			key = k
			if res, hit := h.caches.Portfolio.Get(key); hit {
				h.metrics.ObserveCache(true)
				return res
			}
			h.metrics.ObserveCache(false)
		}
	}

	res := h.engine.SimulatePortfolio(props, opts)
	if key != "" {
		h.caches.Portfolio.Set(key, res)
	}
	h.metrics.ObserveSimulation("portfolio", start, opts.Simulations)
	log.Printf("SimulateHandler: portfolio of %d properties, %d sims, seed %d, horizon %d months (%s)",
		len(props), opts.Simulations, seed, res.HorizonMonths, time.Since(start))
	return res
}

// bindPortfolioOptions parses sims/seed/workers, writing a 400 on failure.
func (h *SimulateHandler) bindPortfolioOptions(c *gin.Context) (simulation.PortfolioOptions, bool) {
	var q models.SimulatePortfolioQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_QUERY",
				Message: err.Error(),
			},
		})
		return simulation.PortfolioOptions{}, false
	}

	sims := h.cfg.DefaultSimulations
	if q.Sims != nil {
		sims = *q.Sims
	}
	if sims < 1 || sims > h.cfg.MaxSimulations {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_SIMS",
				Message: fmt.Sprintf("sims must be between 1 and %d", h.cfg.MaxSimulations),
				Details: map[string]interface{}{
					"sims": sims,
					"max":  h.cfg.MaxSimulations,
				},
			},
		})
		return simulation.PortfolioOptions{}, false
	}

	workers := q.Workers
	if workers == 0 {
		workers = h.cfg.Workers
	}
	return simulation.PortfolioOptions{Simulations: sims, Seed: q.Seed, Workers: workers}, true
}

// bindProperty decodes the body over the market defaults, then normalizes
// and validates it. It writes a 400 and returns false on failure.
func bindProperty(c *gin.Context) (model.PropertyInput, bool) {
	prop := model.DefaultProperty()
	if err := c.ShouldBindJSON(&prop); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return model.PropertyInput{}, false
	}
	prop, err := model.NewProperty(prop)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PROPERTY",
				Message: err.Error(),
			},
		})
		return model.PropertyInput{}, false
	}
	return prop, true
}

func decodeProperties(raws []json.RawMessage) ([]model.PropertyInput, error) {
	props, err := data.DecodeProperties(raws)
	if err != nil {
		return nil, err
	}
	return data.NormalizeProperties(props)
}
