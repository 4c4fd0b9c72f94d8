package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/config"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(c *gin.Context) {
	if err := config.EnsureDB(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unreachable: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK"})
}
