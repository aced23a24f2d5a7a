package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techlabel/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose body exceeds maxBytes. Label
// payloads are small JSON documents, so the limit mostly guards against
// a misconfigured client streaming image data at the print endpoints.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "request body exceeds maximum allowed size"))
			return
		}

		// Content-Length can lie; cap the actual read as well.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
