package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"issue-assistant/internal/shared/server/respond"
	"issue-assistant/internal/shared/telemetry"
)

const (
	internalErrorCode   = "internal"
	internalErrorDetail = "Unexpected server error"
)

// Recovery turns a handler panic into a 500 and logs it with whatever issue the request named.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
				"route":      c.FullPath(),
				"method":     c.Request.Method,
			}
			if v, ok := c.Get(RepoURLKey); ok {
				fields["repo_url"] = v
			}
			if v, ok := c.Get(IssueNumberKey); ok {
				fields["issue_number"] = v
			}
			telemetry.Error("panic", fields)
			c.Set(ErrorCodeKey, internalErrorCode)
			respond.Error(c, http.StatusInternalServerError, internalErrorCode, internalErrorDetail)
		}()
		c.Next()
	}
}
