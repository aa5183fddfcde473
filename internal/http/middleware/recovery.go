// README: Recovery middleware; panics become a JSON 500.
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lambdatrip/internal/logger"
)

func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered", "path", c.Request.URL.Path, "panic", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":     "internal error",
					"timestamp": time.Now().UTC(),
				})
			}
		}()
		c.Next()
	}
}
