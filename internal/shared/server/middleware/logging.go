package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"issue-assistant/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log.
const (
	RepoURLKey     = "repoUrl"
	IssueNumberKey = "issueNumber"
	ErrorCodeKey   = "errorCode"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if v, ok := c.Get(RepoURLKey); ok {
			fields["repo_url"] = v
		}
		if v, ok := c.Get(IssueNumberKey); ok {
			fields["issue_number"] = v
		}
		if v, ok := c.Get(ErrorCodeKey); ok {
			fields["error_code"] = v
		}
		telemetry.Info("request.complete", fields)
	}
}
