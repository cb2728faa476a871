package handlers

import (
	"net/http"

	"realestate-sim/internal/api/models"

	"github.com/gin-gonic/gin"
)

const serviceName = "Real Estate Portfolio Simulator API"

// Root handles GET /
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok", Service: serviceName})
}

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}
