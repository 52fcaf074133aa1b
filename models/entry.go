package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supported content languages.
const (
	LangEN = "en"
	LangHE = "he"
)

// Languages lists the supported language codes in display order.
var Languages = []string{LangEN, LangHE}

// Localized maps a language code ("en", "he") to a string value.
type Localized map[string]string

// Get returns the value for lang, falling back to the other language when
// lang is empty or absent.
func (l Localized) Get(lang string) string {
	if l == nil {
		return ""
	}
	if v := l[lang]; v != "" {
		return v
	}
	for _, code := range Languages {
		if v := l[code]; v != "" {
			return v
		}
	}
	return ""
}

// SEO holds per-language meta fields. Empty values default to the entry's
// title/excerpt at write time.
type SEO struct {
	MetaTitle       Localized `bson:"meta_title" json:"meta_title"`
	MetaDescription Localized `bson:"meta_description" json:"meta_description"`
}

// Author is free-text display information, not a user reference.
type Author struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// ContentEntry is a bilingual blog post document.
// Collection: entries
//
// Slugs are derived from the title per language at write time and are not
// unique in the store; lookup resolves duplicates by first match.
type ContentEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
	Title         Localized          `bson:"title" json:"title"`
	Content       Localized          `bson:"content" json:"content"`
	Excerpt       Localized          `bson:"excerpt" json:"excerpt"`
	Slug          Localized          `bson:"slug" json:"slug"`
	Tags          []string           `bson:"tags" json:"tags"`
	Published     bool               `bson:"published" json:"published"`
	PublishedAt   *time.Time         `bson:"published_at,omitempty" json:"published_at,omitempty"`
	ReadTime      map[string]int     `bson:"read_time" json:"read_time"`
	FeaturedImage string             `bson:"featured_image,omitempty" json:"featured_image,omitempty"`
	Gallery       []string           `bson:"gallery,omitempty" json:"gallery,omitempty"`
	SEO           SEO                `bson:"seo" json:"seo"`
	Author        Author             `bson:"author" json:"author"`
}

// ImageRefs returns every uploaded image referenced by the entry. Used by
// the delete cascade.
func (e *ContentEntry) ImageRefs() []string {
	refs := make([]string, 0, 1+len(e.Gallery))
	if e.FeaturedImage != "" {
		refs = append(refs, e.FeaturedImage)
	}
	refs = append(refs, e.Gallery...)
	return refs
}

// HasSlug reports whether slug matches the entry's slug in any language.
func (e *ContentEntry) HasSlug(slug string) bool {
	for _, code := range Languages {
		if e.Slug[code] == slug {
			return true
		}
	}
	return false
}
