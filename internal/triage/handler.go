package triage

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"issue-assistant/internal/shared/server/middleware"
	"issue-assistant/internal/shared/server/respond"
	"issue-assistant/internal/shared/telemetry"
)

// IssueRequest identifies one issue in a repository.
type IssueRequest struct {
	RepoURL     string `json:"repo_url" binding:"required,url"`
	IssueNumber int    `json:"issue_number" binding:"gt=0"`
}

// Handler exposes the triage pipeline over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler constructs a triage handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires triage routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/analyze_issue", h.analyzeIssue)
	r.POST("/developer_info", h.developerInfo)
}

func (h *Handler) bind(c *gin.Context) (IssueRequest, bool) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Set(middleware.ErrorCodeKey, ErrorCodeValidation)
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeValidation, validationDetail(err))
		return IssueRequest{}, false
	}
	c.Set(middleware.RepoURLKey, req.RepoURL)
	c.Set(middleware.IssueNumberKey, req.IssueNumber)
	return req, true
}

func (h *Handler) analyzeIssue(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := h.svc.AnalyzeIssue(c.Request.Context(), req.RepoURL, req.IssueNumber)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) developerInfo(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	info, err := h.svc.DeveloperInfo(c.Request.Context(), req.RepoURL, req.IssueNumber)
	if err != nil {
		h.fail(c, http.StatusNotFound, err)
		return
	}
	respond.OK(c, info)
}

func (h *Handler) fail(c *gin.Context, status int, err error) {
	code, detail := Describe(err)
	c.Set(middleware.ErrorCodeKey, code)
	telemetry.Warn("triage.failed", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"code":       code,
		"error":      err.Error(),
	})
	respond.Error(c, status, code, detail)
}
