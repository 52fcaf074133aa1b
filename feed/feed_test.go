package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowsite/models"
)

func publishedEntry(titleEN, slugEN, slugHE string, at time.Time) models.ContentEntry {
	return models.ContentEntry{
		Title:       models.Localized{"en": titleEN, "he": titleEN},
		Excerpt:     models.Localized{"en": "teaser"},
		Slug:        models.Localized{"en": slugEN, "he": slugHE},
		Published:   true,
		PublishedAt: &at,
	}
}

func TestBuildRSS(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := []models.ContentEntry{
		publishedEntry("Automation Wins", "automation-wins", "automation-wins", at),
	}

	out, err := BuildRSS("Flowsite", "Business automation blog", "http://example.com/", "en", entries)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<?xml"))
	assert.Contains(t, s, `<rss version="2.0">`)
	assert.Contains(t, s, "<title>Automation Wins</title>")
	assert.Contains(t, s, "<link>http://example.com/blog/automation-wins</link>")
	assert.Contains(t, s, at.Format(time.RFC1123Z))
}

func TestBuildRSSUsesLanguageSlug(t *testing.T) {
	at := time.Now()
	entries := []models.ContentEntry{
		publishedEntry("Hello", "hello", "שלום", at),
	}

	out, err := BuildRSS("Flowsite", "", "http://example.com", "he", entries)
	require.NoError(t, err)
	assert.Contains(t, string(out), "/blog/שלום")
}

func TestBuildSitemapDeduplicatesSharedSlugs(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := []models.ContentEntry{
		// en and he share one slug: a single URL
		publishedEntry("Shared", "shared-slug", "shared-slug", at),
		// distinct slugs: two URLs
		publishedEntry("Hello", "hello", "שלום", at),
	}

	out, err := BuildSitemap("http://example.com", entries)
	require.NoError(t, err)
	s := string(out)

	assert.Equal(t, 1, strings.Count(s, "/blog/shared-slug"))
	assert.Contains(t, s, "/blog/hello")
	assert.Contains(t, s, "/blog/שלום")
	assert.Contains(t, s, "<lastmod>2025-03-10</lastmod>")
	assert.Contains(t, s, "<loc>http://example.com/</loc>")
}
