// Package feed renders RSS and sitemap XML for published entries.
package feed

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"flowsite/models"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// BuildRSS renders an RSS 2.0 feed of published entries in the given
// language, linking each item by its language slug.
func BuildRSS(siteName, siteDescription, baseURL, lang string, entries []models.ContentEntry) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		pubDate := ""
		if e.PublishedAt != nil {
			pubDate = e.PublishedAt.Format(time.RFC1123Z)
		}
		link := base + "/blog/" + e.Slug.Get(lang)
		items = append(items, rssItem{
			Title:       e.Title.Get(lang),
			Link:        link,
			Description: e.Excerpt.Get(lang),
			PubDate:     pubDate,
			GUID:        link,
		})
	}

	doc := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       siteName,
			Link:        base,
			Description: siteDescription,
			Items:       items,
		},
	}
	return encode(doc)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// BuildSitemap renders a sitemap with the site root and one URL per
// published entry per language, deduplicating shared slugs.
func BuildSitemap(baseURL string, entries []models.ContentEntry) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	urls := []sitemapURL{{Loc: base + "/"}}
	seen := map[string]bool{}
	for _, e := range entries {
		lastMod := ""
		if e.PublishedAt != nil {
			lastMod = e.PublishedAt.Format("2006-01-02")
		}
		for _, lang := range models.Languages {
			slug := e.Slug[lang]
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true
			urls = append(urls, sitemapURL{Loc: base + "/blog/" + slug, LastMod: lastMod})
		}
	}
	return encode(sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func encode(doc any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
