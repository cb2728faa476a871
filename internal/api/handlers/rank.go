package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"realestate-sim/internal/analysis"
	"realestate-sim/internal/api/models"
	"realestate-sim/internal/stochastic"

	"github.com/gin-gonic/gin"
)

const defaultRankRuns = 100

// RankHandler handles ranking requests
type RankHandler struct {
	sim *SimulateHandler
}

// NewRankHandler creates a new rank handler
func NewRankHandler(sim *SimulateHandler) *RankHandler {
	return &RankHandler{sim: sim}
}

// RankProperties handles POST /rank
func (h *RankHandler) RankProperties(c *gin.Context) {
	var req struct {
		Properties []json.RawMessage `json:"properties"`
		Runs       int               `json:"runs"`
		Seed       *uint64           `json:"seed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error()))
		return
	}
	if len(req.Properties) == 0 {
		c.JSON(http.StatusBadRequest, models.NewError("NO_PROPERTIES", "At least one property is required"))
		return
	}
	runs := req.Runs
	if runs == 0 {
		runs = defaultRankRuns
	}
	if runs < 1 || runs > h.sim.cfg.MaxSimulations {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_RUNS",
			fmt.Sprintf("runs must be between 1 and %d", h.sim.cfg.MaxSimulations)))
		return
	}
	props, err := decodeProperties(req.Properties)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_PROPERTY", err.Error()))
		return
	}

	start := time.Now()
	seed := stochastic.ResolveSeed(req.Seed)
	ranked := analysis.RankByIRR(h.sim.engine, props, runs, &seed)
	h.sim.metrics.ObserveSimulation("rank", start, runs*len(props))

	resp := models.RankResponse{Seed: seed, Runs: runs, Rankings: make([]models.Ranking, 0, len(ranked))}
	for _, r := range ranked {
		resp.Rankings = append(resp.Rankings, models.NewRanking(r))
	}
	c.JSON(http.StatusOK, resp)
}
