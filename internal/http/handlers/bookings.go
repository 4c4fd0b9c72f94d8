package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/http/middleware"
)

// GET /api/bookings — the actor's slice: priests see bookings addressed to
// them, institutions see the requests they created.
func (h Handlers) ListBookings(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	bookings, err := h.Bookings.ListFor(c.Request.Context(), sess)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// POST /api/bookings — institution requests a booking; it starts pending.
func (h Handlers) CreateBooking(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req models.InsertBooking
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := h.Bookings.Request(c.Request.Context(), sess, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GET /api/bookings/:id — participants only.
func (h Handlers) GetBooking(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	booking, err := h.Bookings.GetFor(c.Request.Context(), sess, strings.TrimSpace(c.Param("id")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

type respondRequest struct {
	Decision string `json:"decision"`
}

// POST /api/bookings/:id/respond — the requested priest accepts or declines.
func (h Handlers) RespondToBooking(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req respondRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := h.Bookings.Respond(c.Request.Context(), sess, strings.TrimSpace(c.Param("id")), strings.TrimSpace(req.Decision))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// POST /api/bookings/:id/complete — either participant, accepted only.
func (h Handlers) CompleteBooking(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	booking, err := h.Bookings.Complete(c.Request.Context(), sess, strings.TrimSpace(c.Param("id")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
