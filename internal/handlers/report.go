package handlers

import (
	"net/http"
	"strconv"

	"staywise/internal/logger"
	"staywise/internal/models"
	"staywise/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportHandler bot 与公开站点使用的 JSON API
type ReportHandler struct {
	svc *services.ReportService
	log *logger.Logger
}

func NewReportHandler(svc *services.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: log}
}

// Publish POST /api/publish
// 新报告返回 201，已存在返回 200，两者都带 slug
func (h *ReportHandler) Publish(c *gin.Context) {
	var in models.ReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.Publish(c.Request.Context(), &in)
	if err != nil {
		abortJSON(c, h.log, err, "")
		return
	}

	code := http.StatusOK
	if res.Published() {
		code = http.StatusCreated
	}
	c.JSON(code, models.PublishResponse{Slug: res.Slug, Message: res.Status})
}

// Get GET /api/report/:slug
func (h *ReportHandler) Get(c *gin.Context) {
	view, err := h.svc.GetReport(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortJSON(c, h.log, err, "Report not found.")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Feed GET /api/feed?limit=&offset=
func (h *ReportHandler) Feed(c *gin.Context) {
	limit := services.DefaultFeedLimit
	if l, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = l
	}
	offset := 0
	if o, err := strconv.Atoi(c.Query("offset")); err == nil {
		offset = o
	}

	items, err := h.svc.GetFeed(c.Request.Context(), limit, offset)
	if err != nil {
		abortJSON(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, items)
}

// CheckDuplicate GET /api/check-duplicate/:fingerprint
func (h *ReportHandler) CheckDuplicate(c *gin.Context) {
	dup, err := h.svc.CheckDuplicate(c.Request.Context(), c.Param("fingerprint"))
	if err != nil {
		abortJSON(c, h.log, err, "Not found.")
		return
	}
	c.JSON(http.StatusOK, dup)
}
