package handlers

import (
	"context"
	"net/http"
	"time"

	"staywise/internal/services"

	"github.com/gin-gonic/gin"
)

// Health GET /healthz
func Health(svc *services.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := svc.Healthy(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
