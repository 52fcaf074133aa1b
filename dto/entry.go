package dto

import (
	"time"

	"flowsite/models"
)

// EntryDTO exposes a content entry to API consumers. The ID is a hex string
// to keep transport simple.
type EntryDTO struct {
	ID            string           `json:"id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Title         models.Localized `json:"title"`
	Content       models.Localized `json:"content"`
	Excerpt       models.Localized `json:"excerpt"`
	Slug          models.Localized `json:"slug"`
	Tags          []string         `json:"tags"`
	Published     bool             `json:"published"`
	PublishedAt   *time.Time       `json:"published_at,omitempty"`
	ReadTime      map[string]int   `json:"read_time"`
	FeaturedImage string           `json:"featured_image,omitempty"`
	Gallery       []string         `json:"gallery,omitempty"`
	SEO           models.SEO       `json:"seo"`
	Author        models.Author    `json:"author"`
}

// NewEntryDTO constructs EntryDTO from models.ContentEntry.
func NewEntryDTO(e models.ContentEntry) EntryDTO {
	return EntryDTO{
		ID:            e.ID.Hex(),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		Title:         e.Title,
		Content:       e.Content,
		Excerpt:       e.Excerpt,
		Slug:          e.Slug,
		Tags:          e.Tags,
		Published:     e.Published,
		PublishedAt:   e.PublishedAt,
		ReadTime:      e.ReadTime,
		FeaturedImage: e.FeaturedImage,
		Gallery:       e.Gallery,
		SEO:           e.SEO,
		Author:        e.Author,
	}
}

// NewEntryDTOs maps a slice of entries.
func NewEntryDTOs(entries []models.ContentEntry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntryDTO(e))
	}
	return out
}

// EntryListResponse is a cursor-paginated page of entries. NextCursor is an
// opaque token valid only for the same filter combination that produced it.
type EntryListResponse struct {
	Data       []EntryDTO `json:"data"`
	NextCursor string     `json:"next_cursor,omitempty"`
	HasMore    bool       `json:"has_more"`
}

// CreateEntryRequest is the POST body for new entries. Title and content
// must each carry at least one language.
type CreateEntryRequest struct {
	Title         models.Localized `json:"title"`
	Content       models.Localized `json:"content"`
	Excerpt       models.Localized `json:"excerpt"`
	Tags          []string         `json:"tags"`
	Published     bool             `json:"published"`
	FeaturedImage string           `json:"featured_image"`
	Gallery       []string         `json:"gallery"`
	SEO           models.SEO       `json:"seo"`
	Author        models.Author    `json:"author"`
}

// UpdateEntryRequest is a partial update; absent fields keep their stored
// values.
type UpdateEntryRequest struct {
	Title         models.Localized `json:"title"`
	Content       models.Localized `json:"content"`
	Excerpt       models.Localized `json:"excerpt"`
	Tags          *[]string        `json:"tags"`
	Published     *bool            `json:"published"`
	FeaturedImage *string          `json:"featured_image"`
	Gallery       *[]string        `json:"gallery"`
	SEO           *models.SEO      `json:"seo"`
	Author        *models.Author   `json:"author"`
}
