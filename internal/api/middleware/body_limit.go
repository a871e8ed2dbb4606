package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ThiagoScutari/sgp-costura/pkg/response"
)

// BodyLimit caps request bodies at maxBytes (e.g. 1<<20 = 1MB); 0 disables it
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
				return
			}
		}
	}
}
