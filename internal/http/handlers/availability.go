package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/http/middleware"
)

// GET /api/availability?priestId= — defaults to the caller's own calendar
// for priests.
func (h Handlers) GetAvailability(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	priestID := strings.TrimSpace(c.Query("priestId"))
	if priestID == "" {
		if sess.Role != models.RolePriest {
			respondError(c, http.StatusBadRequest, "validation_error", "priestId required", nil)
			return
		}
		priestID = sess.UserID
	}

	days, err := h.Availability.ListForPriest(c.Request.Context(), priestID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": days})
}

// PUT /api/availability — upsert one day of slots on the caller's calendar.
func (h Handlers) PutAvailability(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req models.InsertAvailability
	if !BindJSONOrError(c, &req) {
		return
	}

	day, err := h.Availability.Set(c.Request.Context(), sess, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": day})
}
