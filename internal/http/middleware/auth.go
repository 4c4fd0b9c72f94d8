package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/session"
)

const sessionKey = "session"

// Auth parses the Bearer token and stores the resolved session context.
// Handlers downstream can rely on GetSession succeeding.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		}
		if raw == "" {
			// SSE clients cannot set headers from EventSource; allow the
			// token as a query param there
			raw = strings.TrimSpace(c.Query("token"))
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		sess, err := session.ParseToken(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// GetSession extracts the session context stored by Auth.
func GetSession(c *gin.Context) (session.Context, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Context{}, false
	}
	sess, ok := v.(session.Context)
	return sess, ok
}

// RequireRoles only lets listed roles through. Assumes Auth ran earlier.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: no session on context"})
			return
		}
		if _, ok := allowed[strings.ToLower(sess.Role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: role not allowed"})
			return
		}
		c.Next()
	}
}
