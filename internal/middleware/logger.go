package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorLogger logs failed requests and recovers from panics.
func ErrorLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				requestEntry(log, c, start).
					WithField("stack", string(debug.Stack())).
					Errorf("panic: %v", recovered)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":       "INTERNAL_ERROR",
						"message":    "Internal error",
						"request_id": requestID(c),
					},
				})
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					requestEntry(log, c, start).Error(fmt.Sprintf("status=%d", c.Writer.Status()))
				}
				return
			}

			for _, err := range c.Errors {
				entry := requestEntry(log, c, start).WithField("type", fmt.Sprintf("%v", err.Type))
				if err.Meta != nil {
					entry = entry.WithField("meta", err.Meta)
				}
				entry.Error(err.Error())
			}
		}()

		c.Next()
	}
}

func requestEntry(log logrus.FieldLogger, c *gin.Context, start time.Time) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"status":     c.Writer.Status(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"query":      c.Request.URL.RawQuery,
		"client_ip":  c.ClientIP(),
		"user_id":    c.GetInt64(ctxUserID),
		"role":       c.GetString(ctxRole),
		"request_id": requestID(c),
		"latency":    time.Since(start).String(),
	})
}
