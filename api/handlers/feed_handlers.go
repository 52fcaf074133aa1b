package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flowsite/config"
	"flowsite/dto"
	"flowsite/feed"
	"flowsite/models"
	"flowsite/services"
)

const feedEntryLimit = 50

// RSSHandler serves an RSS 2.0 feed of recent published entries in the
// requested language.
func RSSHandler(svc *services.ContentService, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.DefaultQuery("lang", models.LangEN)
		entries, err := svc.ListPopular(c.Request.Context(), feedEntryLimit)
		if err != nil {
			writeError(c, err)
			return
		}

		out, err := feed.BuildRSS(cfg.Site.Name, cfg.Site.Description, cfg.Server.BaseURL, lang, entries)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "feed rendering failed"})
			return
		}
		c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", out)
	}
}

// SitemapHandler serves the sitemap of recent published entries.
func SitemapHandler(svc *services.ContentService, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.ListPopular(c.Request.Context(), feedEntryLimit)
		if err != nil {
			writeError(c, err)
			return
		}

		out, err := feed.BuildSitemap(cfg.Server.BaseURL, entries)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "sitemap rendering failed"})
			return
		}
		c.Data(http.StatusOK, "application/xml; charset=utf-8", out)
	}
}
