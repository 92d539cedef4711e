package handlers

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"staywise/internal/logger"
	"staywise/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	sitemapLimit = 500
	rssLimit     = 20
)

type SEOHandler struct {
	svc     *services.ReportService
	baseURL string
	log     *logger.Logger
}

func NewSEOHandler(svc *services.ReportService, baseURL string, log *logger.Logger) *SEOHandler {
	return &SEOHandler{svc: svc, baseURL: baseURL, log: log}
}

// RobotsTxt 返回robots.txt内容
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

# API 只供 bot 使用
Disallow: /api/

Sitemap: %s/sitemap.xml
`, h.baseURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML 动态生成sitemap.xml：首页 + 最近 500 篇报告
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	reports, err := h.svc.Latest(c.Request.Context(), sitemapLimit)
	if err != nil {
		h.log.Error("build sitemap", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`)

	// 首页 - 最高优先级
	fmt.Fprintf(&b, `  <url>
    <loc>%s/</loc>
    <lastmod>%s</lastmod>
    <changefreq>hourly</changefreq>
    <priority>1.0</priority>
  </url>
`, h.baseURL, time.Now().UTC().Format("2006-01-02"))

	// 报告发布后不再变化
	for _, r := range reports {
		fmt.Fprintf(&b, `  <url>
    <loc>%s/report/%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>never</changefreq>
    <priority>0.7</priority>
  </url>
`, h.baseURL, escapeXML(r.Slug), r.PublishedAt.Format("2006-01-02"))
	}

	b.WriteString(`</urlset>`)

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

// RSSFeed 生成RSS 2.0 feed
func (h *SEOHandler) RSSFeed(c *gin.Context) {
	reports, err := h.svc.Latest(c.Request.Context(), rssLimit)
	if err != nil {
		h.log.Error("build rss", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">
  <channel>
    <title>Staywise</title>
    <link>` + h.baseURL + `</link>
    <description>Scientific credibility analysis for short videos</description>
    <language>en</language>
    <lastBuildDate>` + time.Now().UTC().Format(time.RFC1123Z) + `</lastBuildDate>
    <atom:link href="` + h.baseURL + `/feed.xml" rel="self" type="application/rss+xml"/>
`)

	for _, r := range reports {
		link := fmt.Sprintf("%s/report/%s", h.baseURL, r.Slug)
		description := fmt.Sprintf("[%s · %d/100] %s", r.Verdict, r.CredibilityScore, r.Summary)

		b.WriteString(`    <item>
      <title>` + escapeXML(r.Claim) + `</title>
      <link>` + escapeXML(link) + `</link>
      <description>` + escapeXML(description) + `</description>
      <category>` + escapeXML(r.Domain) + `</category>
      <pubDate>` + r.PublishedAt.Format(time.RFC1123Z) + `</pubDate>
      <guid isPermaLink="true">` + escapeXML(link) + `</guid>
    </item>
`)
	}

	b.WriteString(`  </channel>
</rss>`)

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

// escapeXML 转义XML特殊字符
func escapeXML(s string) string {
	return html.EscapeString(s)
}
