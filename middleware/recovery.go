package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/errors"
)

// Recovery recovers from handler panics, logs the stack, and returns a
// generic SERVER_ERROR body. No panic detail reaches the client.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				traceID := GetTraceID(c)

				logger.Error().
					Str("trace_id", traceID).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Interface("panic", r).
					Str("stack", string(debug.Stack())).
					Msg("Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"status_code": http.StatusInternalServerError,
					"is_success":  false,
					"error": gin.H{
						"timestamp":     time.Now().Format(time.RFC3339),
						"path":          c.Request.URL.Path,
						"error_code":    errors.CodeServerError,
						"error_message": "Internal server error",
					},
				})
			}
		}()

		c.Next()
	}
}
