package handlers

import (
	"net/http"
	"time"

	"vetchat/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles GET /health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Veterinary Chatbot API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  utils.GetHealthStatus(),
	})
}
