package health

import (
	"github.com/gin-gonic/gin"

	"issue-assistant/internal/shared/server/respond"
)

// StatusOK is the only status the service reports while it can serve requests.
const StatusOK = "OK"

// Service encapsulates health-related checks.
type Service struct{}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Status returns a simple health payload.
func (s *Service) Status() map[string]string {
	return map[string]string{"status": StatusOK}
}

// RegisterRoutes wires GET /health.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, s.Status())
	})
}
