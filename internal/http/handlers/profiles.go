package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/http/middleware"
)

// GET /api/profiles/priest — the priest's own profile. 404 means "not yet
// configured", which is a valid state.
func (h Handlers) GetPriestProfile(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	profile, err := h.Profiles.PriestProfileByUser(c.Request.Context(), sess.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// PUT /api/profiles/priest
func (h Handlers) PutPriestProfile(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req models.InsertPriestProfile
	if !BindJSONOrError(c, &req) {
		return
	}

	profile, err := h.Profiles.UpsertPriestProfile(c.Request.Context(), sess, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GET /api/profiles/institution
func (h Handlers) GetInstitutionProfile(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	profile, err := h.Profiles.InstitutionProfileByUser(c.Request.Context(), sess.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// PUT /api/profiles/institution
func (h Handlers) PutInstitutionProfile(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req models.InsertInstitutionProfile
	if !BindJSONOrError(c, &req) {
		return
	}

	profile, err := h.Profiles.UpsertInstitutionProfile(c.Request.Context(), sess, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
