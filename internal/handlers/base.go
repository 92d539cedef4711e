package handlers

import (
	"errors"
	"net/http"
	"time"

	"staywise/internal/logger"
	"staywise/internal/services"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common template variables
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	obj["CurrentPath"] = c.Request.URL.Path
	obj["Year"] = time.Now().Year()

	c.HTML(code, name, obj)
}

// RenderError 渲染错误页
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "Title": http.StatusText(code)})
}

// abortJSON 将 service 错误映射为 JSON 响应，未知错误只记录日志不外泄
func abortJSON(c *gin.Context, log *logger.Logger, err error, notFound string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	default:
		_ = c.Error(err)
		log.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
	}
}
