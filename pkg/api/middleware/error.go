package middleware

import (
	"fmt"
	"net/http"

	"html-extract-go/pkg/cli/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.LogError(fmt.Errorf("%v", recovered), "panic serving %s %s", c.Request.Method, c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "internal server error",
		})
		c.Abort()
	})
}
