package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/http/middleware"
	"priestconnect-api/internal/services"
)

// POST /api/auth/register
func (h Handlers) Register(c *gin.Context) {
	var req models.InsertUser
	if !BindJSONOrError(c, &req) {
		return
	}

	user, token, err := h.Auth.Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, token, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GET /api/me
func (h Handlers) Me(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "no session", nil)
		return
	}

	user, err := h.Auth.UserByID(c.Request.Context(), sess.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
