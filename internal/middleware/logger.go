package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/brokerpulse/internal/logger"
)

// RequestLogger logs one structured line per request and stores a logger
// tagged with the request id in the request context, so services can log
// through logger.FromContext.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"level":"info","request_id":"123e4567-...","method":"GET","path":"/api/v1/leaderboard","status":200,"latency_ms":15,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		rid := toString(c.Value(RequestIDKey))
		reqLog := logger.L().With().Str("request_id", rid).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))

		c.Next()

		ev := reqLog.Info()
		if len(c.Errors) > 0 {
			ev = reqLog.Warn().Str("errors", c.Errors.String())
		}
		ev.Str("method", method).
			Str("path", path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", c.Writer.Status()).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
