package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"flowsite/api/handlers"
	"flowsite/api/middleware"
	"flowsite/auth"
	"flowsite/config"
	"flowsite/db"
	_ "flowsite/docs"
	"flowsite/media"
	"flowsite/services"
)

// Deps carries the constructed dependencies the router wires into handlers.
type Deps struct {
	Store    *db.Store
	Content  *services.ContentService
	Contacts *services.ContactService
	Uploader *media.Uploader
	JWT      *auth.JWTManager
	Cfg      config.AppConfig
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := d.Store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Feeds and stored images
	r.GET("/rss.xml", handlers.RSSHandler(d.Content, d.Cfg))
	r.GET("/sitemap.xml", handlers.SitemapHandler(d.Content, d.Cfg))
	r.Static("/uploads", d.Cfg.Uploads.Dir)

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", handlers.LoginHandler(d.JWT))

		api.GET("/posts", handlers.ListEntriesHandler(d.Content))
		api.GET("/posts/popular", handlers.ListPopularHandler(d.Content))
		api.GET("/posts/tags", handlers.ListTagsHandler(d.Content))
		api.GET("/posts/slug/:slug", handlers.GetEntryBySlugHandler(d.Content))
		api.GET("/posts/:id", handlers.GetEntryHandler(d.Content))

		api.POST("/contacts", handlers.SubmitContactHandler(d.Contacts))

		admin := api.Group("")
		admin.Use(middleware.AdminAuth(d.JWT))
		{
			admin.POST("/posts", handlers.CreateEntryHandler(d.Content))
			admin.PUT("/posts/:id", handlers.UpdateEntryHandler(d.Content))
			admin.DELETE("/posts/:id", handlers.DeleteEntryHandler(d.Content))

			admin.POST("/uploads", handlers.UploadImageHandler(d.Uploader, d.Cfg.Uploads.MaxUploadBytes))
			admin.DELETE("/uploads", handlers.DeleteImageHandler(d.Uploader))

			admin.GET("/contacts", handlers.ListContactsHandler(d.Contacts))
			admin.PATCH("/contacts/:id/status", handlers.UpdateContactStatusHandler(d.Contacts))
		}
	}

	return r
}
