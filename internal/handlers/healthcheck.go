package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
)

func Root(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{"message": "MarketPulse AI API", "version": "1.0.0"})
}

func HealthCheck(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
