package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS handles cross-origin requests. Production locks the allowed origin
// down to configured clients; everything else is wide open for development.
func (m Middleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := "*"
		if m.config != nil && m.config.Environment.Name == "production" {
			origin = c.GetHeader("Origin")
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Voice-Signature")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
