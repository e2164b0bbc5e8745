package webui

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var indexHTML []byte

// Handler serves the single-page browser client.
type Handler struct{}

// NewHandler constructs the browser UI handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes wires GET /.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.index)
}

func (h *Handler) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}
