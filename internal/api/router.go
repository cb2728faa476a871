// Package api wires the HTTP surface of the simulator.
package api

import (
	"realestate-sim/internal/api/handlers"
	"realestate-sim/internal/api/middleware"
	"realestate-sim/internal/config"
	"realestate-sim/internal/observability"
	"realestate-sim/internal/simulation"
	"realestate-sim/internal/store"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the router needs. Metrics and the caches may be nil.
type Deps struct {
	Config  *config.Config
	Engine  *simulation.Engine
	Store   store.PortfolioStore
	Metrics *observability.Metrics
	Caches  handlers.ResultCaches
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(d.Metrics))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(d.Config.CORS))

	sim := handlers.NewSimulateHandler(d.Engine, d.Config.Simulation, d.Caches, d.Metrics)
	portfolio := handlers.NewPortfolioHandler(sim, d.Store)
	presets := handlers.NewPresetHandler(d.Config.PresetDir)
	rank := handlers.NewRankHandler(sim)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	simulate := router.Group("/simulate")
	{
		simulate.POST("/property", sim.SimulateProperty)
		simulate.POST("/portfolio", sim.SimulatePortfolio)
	}

	pf := router.Group("/portfolio")
	{
		pf.GET("", portfolio.List)
		pf.POST("", portfolio.Add)
		pf.DELETE("", portfolio.Clear)
		pf.GET("/:id", portfolio.Get)
		pf.POST("/simulate", portfolio.Simulate)
	}

	router.GET("/presets", presets.List)
	router.GET("/presets/:id", presets.Get)
	router.POST("/rank", rank.RankProperties)

	return router
}
