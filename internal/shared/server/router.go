package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"issue-assistant/internal/shared/metrics"
	"issue-assistant/internal/shared/server/middleware"
)

const upstreamRateLimitGroup = "UPSTREAM"

// Registrar attaches a feature's routes to the router.
type Registrar interface {
	RegisterRoutes(r gin.IRouter)
}

// Options configures the shared middleware chain.
type Options struct {
	CORSAllowOrigins []string
	// RateLimitRPM bounds POST requests per client per minute. Zero disables limiting.
	RateLimitRPM   int
	RateLimitBurst int
	Limiter        *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(opts Options, registrars ...Registrar) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(opts.CORSAllowOrigins),
		middleware.RateLimit(rateLimitConfig(opts)),
	)

	r.GET("/metrics", metrics.Handler())
	for _, reg := range registrars {
		if reg != nil {
			reg.RegisterRoutes(r)
		}
	}
	return r
}

// rateLimitConfig limits only the routes that call GitHub and the model.
func rateLimitConfig(opts Options) middleware.RateLimitConfig {
	rules := map[string]middleware.RateLimitRule{}
	if opts.RateLimitRPM > 0 {
		burst := opts.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		rules[upstreamRateLimitGroup] = middleware.RateLimitRule{
			Rate:  float64(opts.RateLimitRPM) / 60,
			Burst: burst,
		}
	}
	return middleware.RateLimitConfig{
		Rules:   rules,
		Limiter: opts.Limiter,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost {
				return upstreamRateLimitGroup
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
