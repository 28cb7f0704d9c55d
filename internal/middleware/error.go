package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/charllys777/appsaloes/pkg/errors"
)

// ErrorHandler turns errors attached to the gin context into the
// standard envelope and logs them with the request ID.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request error")
		}

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last().Err
		status := http.StatusInternalServerError
		switch {
		case apperrors.IsNotFound(lastErr):
			status = http.StatusNotFound
		case apperrors.IsConflict(lastErr):
			status = http.StatusConflict
		}

		c.JSON(status, gin.H{
			"status":     "error",
			"message":    lastErr.Error(),
			"request_id": requestID,
		})
	}
}
