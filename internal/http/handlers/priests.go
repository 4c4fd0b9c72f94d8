package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/http/middleware"
)

// GET /api/priests?service=&location= — institution-side priest search.
// Both filters optional; location matches as a case-insensitive substring.
func (h Handlers) SearchPriests(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	priests, err := h.Search.Priests(c.Request.Context(), sess, c.Query("service"), c.Query("location"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"priests": priests,
		"count":   len(priests),
	})
}
