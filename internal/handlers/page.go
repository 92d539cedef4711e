package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"staywise/internal/logger"
	"staywise/internal/services"
	"staywise/internal/utils"

	"github.com/gin-gonic/gin"
)

const homePageSize = 20

// PageHandler 公开站点的 HTML 页面
type PageHandler struct {
	svc     *services.ReportService
	baseURL string
	log     *logger.Logger
}

func NewPageHandler(svc *services.ReportService, baseURL string, log *logger.Logger) *PageHandler {
	return &PageHandler{svc: svc, baseURL: baseURL, log: log}
}

// Home 首页：最新 20 篇报告
func (h *PageHandler) Home(c *gin.Context) {
	reports, err := h.svc.Latest(c.Request.Context(), homePageSize)
	if err != nil {
		h.log.Error("load home reports", "error", err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	Render(c, http.StatusOK, "index.html", gin.H{
		"Reports":     reports,
		"Title":       "Latest reports",
		"Description": "Scientific credibility analysis for short videos.",
		"FullURL":     h.baseURL + "/",
	})
}

// Report 报告详情页
func (h *PageHandler) Report(c *gin.Context) {
	slug := c.Param("slug")

	report, err := h.svc.GetReport(c.Request.Context(), slug)
	if errors.Is(err, services.ErrNotFound) {
		RenderError(c, http.StatusNotFound, "Report not found.")
		return
	}
	if err != nil {
		h.log.Error("load report page", "slug", slug, "error", err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	description := report.Summary
	if description == "" {
		description = report.Claim
	}
	if runes := []rune(description); len(runes) > 160 {
		description = string(runes[:160]) + "..."
	}

	Render(c, http.StatusOK, "report.html", gin.H{
		"Report":          report,
		"ExplanationHTML": utils.RenderMarkdown(report.Explanation),
		"ReportURL":       fmt.Sprintf("%s/report/%s", h.baseURL, report.Slug),
		"Title":           report.Claim,
		"Description":     strings.TrimSpace(description),
		"FullURL":         fmt.Sprintf("%s/report/%s", h.baseURL, report.Slug),
	})
}

// NotFound 未匹配路由
func (h *PageHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return
	}
	RenderError(c, http.StatusNotFound, "Page not found.")
}
