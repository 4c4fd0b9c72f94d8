package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/http/middleware"
)

// GET /api/dashboard/stats — the counters behind the dashboard cards.
func (h Handlers) DashboardStats(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	stats, err := h.Bookings.StatsFor(c.Request.Context(), sess)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
