package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"flowsite/models"
	"flowsite/repositories"
)

// fakeEntryStore is an in-memory EntryStore honoring the repository
// contract: sort order, page-size+1 over-fetch and cursor fingerprinting.
type fakeEntryStore struct {
	entries []models.ContentEntry
	clock   time.Time

	exactErr     error
	publishedErr error
	findAnyCalls int
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeEntryStore) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

// seed inserts an entry directly with deterministic timestamps.
func (f *fakeEntryStore) seed(e models.ContentEntry) models.ContentEntry {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	now := f.tick()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	if e.Published && e.PublishedAt == nil {
		at := now
		e.PublishedAt = &at
	}
	f.entries = append(f.entries, e)
	return e
}

func (f *fakeEntryStore) Insert(ctx context.Context, e *models.ContentEntry) (primitive.ObjectID, error) {
	stored := f.seed(*e)
	e.ID = stored.ID
	e.CreatedAt = stored.CreatedAt
	e.UpdatedAt = stored.UpdatedAt
	return stored.ID, nil
}

func (f *fakeEntryStore) Replace(ctx context.Context, id primitive.ObjectID, e *models.ContentEntry) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			e.ID = id
			e.UpdatedAt = f.tick()
			f.entries[i] = *e
			return nil
		}
	}
	return context.Canceled // unreachable in these tests; Replace is guarded by FindByID
}

func (f *fakeEntryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return context.Canceled
}

func (f *fakeEntryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ContentEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			e := f.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryStore) FindBySlugExact(ctx context.Context, lang, slug string) (*models.ContentEntry, error) {
	if f.exactErr != nil {
		return nil, f.exactErr
	}
	for i := range f.entries {
		if f.entries[i].Published && f.entries[i].Slug[lang] == slug {
			e := f.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryStore) FindPublished(ctx context.Context, limit int64) ([]models.ContentEntry, error) {
	if f.publishedErr != nil {
		return nil, f.publishedErr
	}
	var out []models.ContentEntry
	for _, e := range f.entries {
		if e.Published {
			out = append(out, e)
		}
	}
	sortEntries(out, "published_at")
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEntryStore) FindAny(ctx context.Context, limit int64) ([]models.ContentEntry, error) {
	f.findAnyCalls++
	out := make([]models.ContentEntry, len(f.entries))
	copy(out, f.entries)
	sortEntries(out, "updated_at")
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEntryStore) List(ctx context.Context, opt repositories.ListEntriesOptions) (repositories.EntryPage, error) {
	if opt.PageSize <= 0 || opt.PageSize > 100 {
		opt.PageSize = 20
	}

	var matched []models.ContentEntry
	for _, e := range f.entries {
		if opt.Published != nil && e.Published != *opt.Published {
			continue
		}
		if len(opt.Tags) > 0 && !tagsIntersect(e.Tags, opt.Tags) {
			continue
		}
		matched = append(matched, e)
	}

	publishedOnly := opt.Published != nil && *opt.Published
	sortField := "updated_at"
	if publishedOnly {
		sortField = "published_at"
	}
	sortEntries(matched, sortField)

	fingerprint := fakeFingerprint(opt.Published, opt.Tags)
	if opt.Cursor != "" {
		lastID, lastSort, err := repositories.DecodeCursor(opt.Cursor, fingerprint)
		if err != nil {
			return repositories.EntryPage{}, err
		}
		var after []models.ContentEntry
		for _, e := range matched {
			sv := fakeSortValue(e, sortField)
			if sv.Before(lastSort) || (sv.Equal(lastSort) && e.ID.Hex() < lastID.Hex()) {
				after = append(after, e)
			}
		}
		matched = after
	}

	page := repositories.EntryPage{Entries: matched}
	if len(matched) > opt.PageSize {
		page.Entries = matched[:opt.PageSize]
		page.HasMore = true
	}
	if len(page.Entries) > 0 {
		last := page.Entries[len(page.Entries)-1]
		page.NextCursor = repositories.EncodeCursor(last.ID, fakeSortValue(last, sortField), fingerprint)
	}
	return page, nil
}

func (f *fakeEntryStore) ListTags(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var tags []string
	for _, e := range f.entries {
		for _, t := range e.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func fakeFingerprint(published *bool, tags []string) uint64 {
	var fp uint64 = 17
	if published != nil {
		if *published {
			fp += 1
		} else {
			fp += 2
		}
	}
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)
	for _, t := range sorted {
		for _, r := range t {
			fp = fp*31 + uint64(r)
		}
	}
	return fp
}

func fakeSortValue(e models.ContentEntry, sortField string) time.Time {
	if sortField == "published_at" && e.PublishedAt != nil {
		return *e.PublishedAt
	}
	return e.UpdatedAt
}

func sortEntries(entries []models.ContentEntry, sortField string) {
	sort.SliceStable(entries, func(i, j int) bool {
		a := fakeSortValue(entries[i], sortField)
		b := fakeSortValue(entries[j], sortField)
		if !a.Equal(b) {
			return a.After(b)
		}
		return entries[i].ID.Hex() > entries[j].ID.Hex()
	})
}

func tagsIntersect(entryTags, filterTags []string) bool {
	for _, et := range entryTags {
		for _, ft := range filterTags {
			if strings.EqualFold(et, ft) {
				return true
			}
		}
	}
	return false
}

// fakeImageDeleter records delete attempts and can fail selected refs.
type fakeImageDeleter struct {
	deleted []string
	failRef string
}

func (f *fakeImageDeleter) Delete(ctx context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	if ref == f.failRef {
		return context.DeadlineExceeded
	}
	return nil
}
