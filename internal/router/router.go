package router

import (
	"staywise/internal/config"
	"staywise/internal/handlers"
	"staywise/internal/logger"
	"staywise/internal/middleware"
	"staywise/internal/services"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// New 构建 gin 引擎：中间件、模板、静态资源和全部路由
func New(cfg *config.Config, svc *services.ReportService, log *logger.Logger, webDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	// 页面、feed 与 JSON 压缩；健康检查保持原样
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/healthz"})))

	r.HTMLRender = LoadTemplates(webDir + "/templates")
	r.Static("/static", webDir+"/static")

	RegisterRoutes(r, cfg, svc, log)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, svc *services.ReportService, log *logger.Logger) {
	// Handlers
	reportHandler := handlers.NewReportHandler(svc, log)
	pageHandler := handlers.NewPageHandler(svc, cfg.BaseURL, log)
	seoHandler := handlers.NewSEOHandler(svc, cfg.BaseURL, log)

	// 公共页面 (Public Pages)
	r.GET("/", pageHandler.Home)
	r.GET("/report/:slug", pageHandler.Report)
	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)
	r.GET("/feed.xml", seoHandler.RSSFeed)
	r.GET("/healthz", handlers.Health(svc))
	r.NoRoute(pageHandler.NotFound)

	// API (bot / 站点)
	api := r.Group("/api")
	{
		api.GET("/report/:slug", reportHandler.Get)
		api.GET("/feed", reportHandler.Feed)
		// bot 在分析前查重
		api.GET("/check-duplicate/:fingerprint", reportHandler.CheckDuplicate)
		// 发布需要 X-API-Key
		api.POST("/publish", middleware.APIKeyRequired(cfg.APIKey), reportHandler.Publish)
	}
}
