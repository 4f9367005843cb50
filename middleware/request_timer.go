package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestTimer logs how long each request took. Every analytics
// request recomputes its derived tables from scratch, so this is the
// place to watch when the dataset grows.
func RequestTimer() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Printf("%s %s -> %d (%s)",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Round(time.Microsecond),
		)
	}
}
