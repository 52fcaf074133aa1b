package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"

	"flowsite/api/router"
	"flowsite/auth"
	"flowsite/config"
	"flowsite/db"
	"flowsite/logger"
	"flowsite/media"
	"flowsite/repositories"
	"flowsite/services"
)

// @title           Flowsite API
// @version         1.0
// @description     Bilingual blog content API: posts, image uploads, contacts.
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	store, err := db.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Disconnect(context.Background())

	jwtMgr, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	blobs := media.NewLocalStore(cfg.Uploads.Dir, cfg.Server.BaseURL)
	uploader := media.NewUploader(blobs, cfg.Uploads)

	entries := repositories.NewEntryRepository(store.Database())
	contacts := repositories.NewContactRepository(store.Database())

	r := router.New(router.Deps{
		Store:    store,
		Content:  services.NewContentService(entries, uploader),
		Contacts: services.NewContactService(contacts),
		Uploader: uploader,
		JWT:      jwtMgr,
		Cfg:      cfg,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Log.Info("listening on " + addr)
	if err := http.ListenAndServe(addr, c.Handler(r)); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
