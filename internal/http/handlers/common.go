package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/http/middleware"
	"priestconnect-api/internal/services"
	"priestconnect-api/internal/store"
)

// Handlers bundles the domain services behind the HTTP surface.
type Handlers struct {
	Auth         services.AuthService
	Profiles     services.ProfileService
	Search       services.SearchService
	Availability services.AvailabilityService
	Bookings     services.BookingService
	Docs         services.DocsService

	// Store is used directly by the SSE stream endpoint.
	Store *store.Store
}

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps the domain error taxonomy to HTTP responses.
// Persistence failures get 503 since they are the one retryable kind.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsInvalidService(err):
		respondError(c, http.StatusUnprocessableEntity, "invalid_service", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsIllegalTransition(err):
		respondError(c, http.StatusConflict, "illegal_transition", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsPersistence(err):
		respondError(c, http.StatusServiceUnavailable, "persistence_error", "backing store unavailable, retry later", nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "malformed payload", err.Error())
		return false
	}
	return true
}
