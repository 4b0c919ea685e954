package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger writes one entry per request. Private errors are logged here and never reach the client.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithFields(logrus.Fields{
		"component": "api",
		"module":    "http",
	})
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"latency":  time.Since(start).String(),
			"clientIP": c.ClientIP(),
		}
		if userID, ok := c.Get(CurrentUserIDKey); ok {
			fields["userID"] = userID
		}
		reqEntry := entry.WithFields(fields)

		if private := c.Errors.ByType(gin.ErrorTypePrivate); len(private) > 0 {
			reqEntry.WithField("errors", private.String()).Error("request failed")
			return
		}
		if c.Writer.Status() >= 500 { //nolint:mnd
			reqEntry.Error("request failed")
			return
		}
		reqEntry.Info("request")
	}
}
