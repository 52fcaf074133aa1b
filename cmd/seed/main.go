package main

import (
	"context"
	"log"

	"flowsite/config"
	"flowsite/db"
	"flowsite/logger"
	"flowsite/models"
	"flowsite/repositories"
	"flowsite/services"
)

// Seeds a handful of bilingual demo posts so a fresh database has content to
// browse. Safe to run repeatedly; entries get fresh IDs each time.
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	store, err := db.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Disconnect(context.Background())

	svc := services.NewContentService(repositories.NewEntryRepository(store.Database()), nil)

	seeds := []services.CreateEntryInput{
		{
			Title:     models.Localized{models.LangEN: "Welcome to the Blog", models.LangHE: "ברוכים הבאים לבלוג"},
			Content:   models.Localized{models.LangEN: "This is the first post. It exists so the list page is not empty.", models.LangHE: "זהו הפוסט הראשון. הוא קיים כדי שעמוד הרשימה לא יהיה ריק."},
			Excerpt:   models.Localized{models.LangEN: "The obligatory first post.", models.LangHE: "פוסט הפתיחה המתבקש."},
			Tags:      []string{"meta"},
			Published: true,
			Author:    models.Author{Name: "Admin"},
		},
		{
			Title:     models.Localized{models.LangEN: "Working with Two Languages"},
			Content:   models.Localized{models.LangEN: "When a post only has English text, the Hebrew side falls back to it automatically."},
			Tags:      []string{"i18n", "meta"},
			Published: true,
			Author:    models.Author{Name: "Admin"},
		},
		{
			Title:   models.Localized{models.LangHE: "טיוטה בעברית"},
			Content: models.Localized{models.LangHE: "טיוטה שעדיין לא פורסמה, לבדיקה שהרשימה הציבורית מסננת אותה."},
			Tags:    []string{"drafts"},
			Author:  models.Author{Name: "Admin"},
		},
	}

	for _, in := range seeds {
		e, err := svc.Create(context.Background(), in)
		if err != nil {
			log.Fatal(err)
		}
		logger.Log.Info("seeded entry " + e.ID.Hex())
	}
}
