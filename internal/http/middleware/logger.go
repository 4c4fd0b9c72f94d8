package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one access-log line per request, tagged with the request id
// assigned upstream so domain log lines can be correlated by hand.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Printf("[HTTP] %s %s status=%d bytes=%d latency=%s ip=%s request_id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).Round(time.Microsecond),
			c.ClientIP(),
			GetRequestID(c),
		)
	}
}
