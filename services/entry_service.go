package services

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"flowsite/cmserrors"
	"flowsite/content"
	"flowsite/logger"
	"flowsite/models"
	"flowsite/repositories"
)

const (
	// slugScanLimit bounds the any-language fallback over published entries.
	slugScanLimit = 50
	// fullScanLimit caps the last-resort scan used when the indexed slug
	// path errors (e.g. missing index). Deliberately finite; the original
	// design scanned unbounded.
	fullScanLimit = 500
	// fullScanTimeout bounds the last-resort scan in time as well.
	fullScanTimeout = 5 * time.Second

	defaultPopularLimit = 10
	maxPopularLimit     = 50
)

// EntryStore is the slice of the entry repository the service depends on.
// Tests substitute an in-memory fake.
type EntryStore interface {
	Insert(ctx context.Context, e *models.ContentEntry) (primitive.ObjectID, error)
	Replace(ctx context.Context, id primitive.ObjectID, e *models.ContentEntry) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ContentEntry, error)
	FindBySlugExact(ctx context.Context, lang, slug string) (*models.ContentEntry, error)
	FindPublished(ctx context.Context, limit int64) ([]models.ContentEntry, error)
	FindAny(ctx context.Context, limit int64) ([]models.ContentEntry, error)
	List(ctx context.Context, opt repositories.ListEntriesOptions) (repositories.EntryPage, error)
	ListTags(ctx context.Context) ([]string, error)
}

// ImageDeleter is the slice of the media uploader used by the delete
// cascade.
type ImageDeleter interface {
	Delete(ctx context.Context, ref string) error
}

// ContentService mediates all reads and writes of content entries, applying
// language backfill, write-time derivation and slug fallback resolution.
type ContentService struct {
	store  EntryStore
	images ImageDeleter
}

func NewContentService(store EntryStore, images ImageDeleter) *ContentService {
	return &ContentService{store: store, images: images}
}

func (s *ContentService) ready() error {
	if s.store == nil {
		return eris.Wrap(cmserrors.ErrStoreUnavailable, "content store not initialized")
	}
	return nil
}

type CreateEntryInput struct {
	Title         models.Localized
	Content       models.Localized
	Excerpt       models.Localized
	Tags          []string
	Published     bool
	FeaturedImage string
	Gallery       []string
	SEO           models.SEO
	Author        models.Author
}

// Create validates and inserts a new entry. Title and content must each be
// present in at least one language; the missing language falls back to the
// present one at write time.
func (s *ContentService) Create(ctx context.Context, in CreateEntryInput) (*models.ContentEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if in.Title.Get("") == "" {
		return nil, eris.Wrap(cmserrors.ErrValidation, "title is required in at least one language")
	}
	if in.Content.Get("") == "" {
		return nil, eris.Wrap(cmserrors.ErrValidation, "content is required in at least one language")
	}

	e := &models.ContentEntry{
		Title:         in.Title,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		Tags:          normalizeTags(in.Tags),
		Published:     in.Published,
		FeaturedImage: in.FeaturedImage,
		Gallery:       in.Gallery,
		SEO:           in.SEO,
		Author:        in.Author,
	}
	deriveFields(e)
	if e.Published {
		now := time.Now()
		e.PublishedAt = &now
	}

	id, err := s.store.Insert(ctx, e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return e, nil
}

type UpdateEntryInput struct {
	Title         models.Localized
	Content       models.Localized
	Excerpt       models.Localized
	Tags          *[]string
	Published     *bool
	FeaturedImage *string
	Gallery       *[]string
	SEO           *models.SEO
	Author        *models.Author
}

// Update merges the provided fields into the existing entry, then
// regenerates slug and read time from the merged content. Transitioning
// published from false to true stamps published_at.
func (s *ContentService) Update(ctx context.Context, hexID string, in UpdateEntryInput) (*models.ContentEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, eris.Wrap(cmserrors.ErrNotFound, "entry "+hexID)
	}

	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, eris.Wrap(cmserrors.ErrNotFound, "entry "+hexID)
	}

	if in.Title != nil {
		e.Title = in.Title
	}
	if in.Content != nil {
		e.Content = in.Content
	}
	if in.Excerpt != nil {
		e.Excerpt = in.Excerpt
	}
	if in.Tags != nil {
		e.Tags = normalizeTags(*in.Tags)
	}
	if in.FeaturedImage != nil {
		e.FeaturedImage = *in.FeaturedImage
	}
	if in.Gallery != nil {
		e.Gallery = *in.Gallery
	}
	if in.SEO != nil {
		e.SEO = *in.SEO
	}
	if in.Author != nil {
		e.Author = *in.Author
	}
	if in.Published != nil && *in.Published != e.Published {
		e.Published = *in.Published
		if e.Published {
			now := time.Now()
			e.PublishedAt = &now
		} else {
			e.PublishedAt = nil
		}
	}

	deriveFields(e)

	if err := s.store.Replace(ctx, id, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the entry after attempting to delete every referenced
// image. Image cleanup is best-effort: failures are logged and the entry
// deletion proceeds regardless.
func (s *ContentService) Delete(ctx context.Context, hexID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return eris.Wrap(cmserrors.ErrNotFound, "entry "+hexID)
	}

	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return eris.Wrap(cmserrors.ErrNotFound, "entry "+hexID)
	}

	if s.images != nil {
		for _, ref := range e.ImageRefs() {
			if err := s.images.Delete(ctx, ref); err != nil {
				logger.Log.Warnf("cascade image cleanup failed entry=%s ref=%s err=%v", hexID, ref, err)
			}
		}
	}

	return s.store.Delete(ctx, id)
}

// GetByID returns the entry or nil when absent; absence is not an error.
func (s *ContentService) GetByID(ctx context.Context, hexID string) (*models.ContentEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, nil
	}
	return s.store.FindByID(ctx, id)
}

// GetBySlug resolves a slug through an ordered chain of increasingly
// permissive strategies and returns nil when none match:
//
//  1. indexed exact match on the requested language, published only
//  2. bounded scan of recent published entries matching the slug in any
//     language, so links minted against the other language's slug keep
//     working
//  3. capped, time-boxed scan of the whole collection, tried only when the
//     indexed path itself errored (e.g. missing index)
func (s *ContentService) GetBySlug(ctx context.Context, slug, lang string) (*models.ContentEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if lang != models.LangEN && lang != models.LangHE {
		lang = models.LangEN
	}

	var degraded error

	// stage 1: indexed lookup
	e, err := s.store.FindBySlugExact(ctx, lang, slug)
	if err != nil {
		degraded = err
		logger.Log.Warnf("indexed slug lookup failed slug=%s lang=%s err=%v", slug, lang, err)
	} else if e != nil {
		return e, nil
	}

	// stage 2: any-language match over recent published entries
	published, err := s.store.FindPublished(ctx, slugScanLimit)
	if err != nil {
		degraded = err
		logger.Log.Warnf("published slug scan failed slug=%s err=%v", slug, err)
	} else {
		for i := range published {
			if published[i].HasSlug(slug) {
				return &published[i], nil
			}
		}
	}

	// stage 3: resilience path for index configuration errors only
	if degraded != nil {
		scanCtx, cancel := context.WithTimeout(ctx, fullScanTimeout)
		defer cancel()
		all, err := s.store.FindAny(scanCtx, fullScanLimit)
		if err != nil {
			return nil, err
		}
		for i := range all {
			if all[i].HasSlug(slug) {
				return &all[i], nil
			}
		}
	}

	return nil, nil
}

type ListEntriesInput struct {
	Published *bool
	Tags      []string
	Search    string
	PageSize  int
	Cursor    string
}

// ListEntriesResult is one page of entries plus the cursor state.
type ListEntriesResult struct {
	Entries    []models.ContentEntry
	NextCursor string
	HasMore    bool
}

// List returns a filtered, cursor-paginated page. The free-text search is
// applied after the page is cut, because the store cannot substring-match
// across nested language maps; a page filtered by search may therefore hold
// fewer than PageSize entries even when more matches exist further on. This
// is a known trade-off, not a bug.
func (s *ContentService) List(ctx context.Context, in ListEntriesInput) (ListEntriesResult, error) {
	if err := s.ready(); err != nil {
		return ListEntriesResult{}, err
	}

	page, err := s.store.List(ctx, repositories.ListEntriesOptions{
		Published: in.Published,
		Tags:      in.Tags,
		PageSize:  in.PageSize,
		Cursor:    in.Cursor,
	})
	if err != nil {
		return ListEntriesResult{}, err
	}

	entries := page.Entries
	if term := strings.TrimSpace(in.Search); term != "" {
		entries = filterBySearch(entries, term)
	}

	return ListEntriesResult{
		Entries:    entries,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}, nil
}

// ListTags returns the sorted set of distinct tags across all entries.
func (s *ContentService) ListTags(ctx context.Context) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.ListTags(ctx)
}

// ListPopular returns published entries by recency. There is no engagement
// signal behind the name; ordering is purely published_at descending.
func (s *ContentService) ListPopular(ctx context.Context, limit int) ([]models.ContentEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}
	return s.store.FindPublished(ctx, int64(limit))
}

// deriveFields recomputes everything derived from title/content on every
// save: language backfill, slugs, read times and SEO defaults.
func deriveFields(e *models.ContentEntry) {
	e.Title = backfill(e.Title)
	e.Content = backfill(e.Content)
	e.Excerpt = backfill(e.Excerpt)

	slugs := models.Localized{}
	readTime := map[string]int{}
	for _, code := range models.Languages {
		slugs[code] = content.GenerateSlug(e.Title[code])
		readTime[code] = content.ReadingTime(e.Content[code])
	}
	e.Slug = slugs
	e.ReadTime = readTime

	metaTitle := models.Localized{}
	metaDesc := models.Localized{}
	for _, code := range models.Languages {
		metaTitle[code] = e.SEO.MetaTitle[code]
		if metaTitle[code] == "" {
			metaTitle[code] = e.Title[code]
		}
		metaDesc[code] = e.SEO.MetaDescription[code]
		if metaDesc[code] == "" {
			metaDesc[code] = e.Excerpt[code]
		}
	}
	e.SEO = models.SEO{MetaTitle: metaTitle, MetaDescription: metaDesc}
}

// backfill fills each supported language from the other one when missing,
// dropping unknown language keys.
func backfill(l models.Localized) models.Localized {
	out := models.Localized{}
	for _, code := range models.Languages {
		out[code] = l.Get(code)
	}
	return out
}

// normalizeTags trims and dedupes tags preserving their insertion order.
func normalizeTags(tags []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}

// filterBySearch keeps entries whose title, content or excerpt contains
// term in any language, case-insensitively.
func filterBySearch(entries []models.ContentEntry, term string) []models.ContentEntry {
	term = strings.ToLower(term)
	out := make([]models.ContentEntry, 0, len(entries))
	for _, e := range entries {
		if entryMatches(e, term) {
			out = append(out, e)
		}
	}
	return out
}

func entryMatches(e models.ContentEntry, lowerTerm string) bool {
	for _, l := range []models.Localized{e.Title, e.Content, e.Excerpt} {
		for _, code := range models.Languages {
			if strings.Contains(strings.ToLower(l[code]), lowerTerm) {
				return true
			}
		}
	}
	return false
}
