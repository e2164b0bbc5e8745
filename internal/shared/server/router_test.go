package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"issue-assistant/internal/services/health"
	"issue-assistant/internal/shared/server/middleware"
)

type echoRoutes struct{}

func (echoRoutes) RegisterRoutes(r gin.IRouter) {
	r.POST("/echo", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func newTestRouter(opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	opts.Limiter = middleware.NewRateLimiter(func() time.Time { return now })
	return NewRouter(opts, health.NewService(), echoRoutes{})
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRouterHealthAndRequestID(t *testing.T) {
	r := newTestRouter(Options{CORSAllowOrigins: []string{"http://localhost:3000"}})

	resp := serve(r, http.MethodGet, "/health")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"status":"OK"`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id header")
	}
	if resp.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("expected CORS header, got %q", resp.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRouterRateLimitsPostOnly(t *testing.T) {
	r := newTestRouter(Options{RateLimitRPM: 60, RateLimitBurst: 1})

	if resp := serve(r, http.MethodPost, "/echo"); resp.Code != http.StatusOK {
		t.Fatalf("first post expected 200, got %d", resp.Code)
	}
	resp := serve(r, http.MethodPost, "/echo")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("second post expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	for i := 0; i < 5; i++ {
		if resp := serve(r, http.MethodGet, "/health"); resp.Code != http.StatusOK {
			t.Fatalf("health request %d expected 200, got %d", i+1, resp.Code)
		}
	}
}

func TestRouterRateLimitDisabled(t *testing.T) {
	r := newTestRouter(Options{})

	for i := 0; i < 20; i++ {
		if resp := serve(r, http.MethodPost, "/echo"); resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}
}

func TestRouterMetrics(t *testing.T) {
	r := newTestRouter(Options{})

	resp := serve(r, http.MethodGet, "/metrics")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "issue_analysis_started_total") {
		t.Fatalf("expected metrics output, got %s", resp.Body.String())
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8000", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
