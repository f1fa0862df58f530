package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports that the server is up.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
