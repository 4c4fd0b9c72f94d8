package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/http/middleware"
)

// GET /api/bookings/:id/confirmation — PDF confirmation for participants.
func (h Handlers) BookingConfirmation(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	pdf, filename, err := h.Docs.GenerateConfirmation(c.Request.Context(), sess, strings.TrimSpace(c.Param("id")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
