package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Recovery turns handler panics into a 500 instead of killing the process.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Error().
				Interface("panic", r).
				Str("request_id", RequestIDFrom(c)).
				Str("path", c.Request.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}()
		c.Next()
	}
}
