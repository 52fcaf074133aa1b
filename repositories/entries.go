package repositories

import (
	"context"
	"regexp"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flowsite/cmserrors"
	"flowsite/models"
)

type EntryRepository struct {
	col *mongo.Collection
}

func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{col: db.Collection("entries")}
}

// Insert inserts a new entry document and returns the assigned id.
// Slug uniqueness is not validated; duplicates resolve first-match at read.
func (r *EntryRepository) Insert(ctx context.Context, e *models.ContentEntry) (primitive.ObjectID, error) {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, e)
	if err != nil {
		return primitive.NilObjectID, eris.Wrap(err, "insert entry")
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Replace overwrites the document for id with e, refreshing updated_at.
// The underlying store silently no-ops on a missing id, so the matched
// count is checked and surfaced as NotFound.
func (r *EntryRepository) Replace(ctx context.Context, id primitive.ObjectID, e *models.ContentEntry) error {
	e.ID = id
	e.UpdatedAt = time.Now()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, e)
	if err != nil {
		return eris.Wrap(err, "replace entry")
	}
	if res.MatchedCount == 0 {
		return eris.Wrap(cmserrors.ErrNotFound, "entry "+id.Hex())
	}
	return nil
}

// Delete removes the entry document. Image cleanup happens in the service
// layer before this is called.
func (r *EntryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return eris.Wrap(err, "delete entry")
	}
	if res.DeletedCount == 0 {
		return eris.Wrap(cmserrors.ErrNotFound, "entry "+id.Hex())
	}
	return nil
}

// FindByID returns the entry or nil when absent. Absence is a valid read
// outcome, not an error.
func (r *EntryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ContentEntry, error) {
	var e models.ContentEntry
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "find entry by id")
	}
	return &e, nil
}

// FindBySlugExact is the indexed lookup path: published entries whose slug
// in the given language equals slug.
func (r *EntryRepository) FindBySlugExact(ctx context.Context, lang, slug string) (*models.ContentEntry, error) {
	var e models.ContentEntry
	err := r.col.FindOne(ctx, bson.M{"slug." + lang: slug, "published": true}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "find entry by slug")
	}
	return &e, nil
}

// FindPublished returns published entries ordered by published_at desc,
// capped at limit.
func (r *EntryRepository) FindPublished(ctx context.Context, limit int64) ([]models.ContentEntry, error) {
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "published_at", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, bson.M{"published": true}, opts)
}

// FindAny returns entries regardless of publication state, newest update
// first, capped at limit. Only the last-resort slug fallback uses this.
func (r *EntryRepository) FindAny(ctx context.Context, limit int64) ([]models.ContentEntry, error) {
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *EntryRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.ContentEntry, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, eris.Wrap(err, "find entries")
	}
	defer cur.Close(ctx)

	var results []models.ContentEntry
	for cur.Next(ctx) {
		var e models.ContentEntry
		if err := cur.Decode(&e); err != nil {
			return nil, eris.Wrap(err, "decode entry")
		}
		results = append(results, e)
	}
	if err := cur.Err(); err != nil {
		return nil, eris.Wrap(err, "iterate entries")
	}
	return results, nil
}

type ListEntriesOptions struct {
	Published *bool
	Tags      []string
	PageSize  int
	Cursor    string
}

// EntryPage is one page of a cursor-paginated listing.
type EntryPage struct {
	Entries    []models.ContentEntry
	NextCursor string
	HasMore    bool
}

// List returns entries with filters and cursor pagination. Published-only
// listings sort by published_at desc; anything else sorts by updated_at
// desc so drafts without a publish timestamp remain sortable.
//
// The store fetches page size + 1 documents to detect HasMore without a
// separate count query; the extra document is discarded before the page is
// returned.
func (r *EntryRepository) List(ctx context.Context, opt ListEntriesOptions) (EntryPage, error) {
	if opt.PageSize <= 0 || opt.PageSize > 100 {
		opt.PageSize = 20
	}

	filter := bson.M{}
	if opt.Published != nil {
		filter["published"] = *opt.Published
	}
	if len(opt.Tags) > 0 {
		// Anchored case-insensitive match; an entry qualifies when any of
		// its tags intersect the filter set.
		arr := make([]interface{}, 0, len(opt.Tags))
		for _, tag := range opt.Tags {
			if tag == "" {
				continue
			}
			arr = append(arr, primitive.Regex{Pattern: "^" + regexp.QuoteMeta(tag) + "$", Options: "i"})
		}
		if len(arr) > 0 {
			filter["tags"] = bson.M{"$in": arr}
		}
	}

	publishedOnly := opt.Published != nil && *opt.Published
	sortField := "updated_at"
	if publishedOnly {
		sortField = "published_at"
	}
	fingerprint := filterFingerprint(opt.Published, opt.Tags)

	query := filter
	if opt.Cursor != "" {
		lastID, lastSort, err := DecodeCursor(opt.Cursor, fingerprint)
		if err != nil {
			return EntryPage{}, err
		}
		after := bson.M{"$or": []bson.M{
			{sortField: bson.M{"$lt": lastSort}},
			{sortField: lastSort, "_id": bson.M{"$lt": lastID}},
		}}
		query = bson.M{"$and": []bson.M{filter, after}}
	}

	findOpts := options.Find().
		SetLimit(int64(opt.PageSize + 1)).
		SetSort(bson.D{{Key: sortField, Value: -1}, {Key: "_id", Value: -1}})
	results, err := r.find(ctx, query, findOpts)
	if err != nil {
		return EntryPage{}, err
	}

	page := EntryPage{Entries: results}
	if len(results) > opt.PageSize {
		page.Entries = results[:opt.PageSize]
		page.HasMore = true
	}
	if len(page.Entries) > 0 {
		last := page.Entries[len(page.Entries)-1]
		page.NextCursor = EncodeCursor(last.ID, sortValue(last, sortField), fingerprint)
	}
	return page, nil
}

func sortValue(e models.ContentEntry, sortField string) time.Time {
	if sortField == "published_at" && e.PublishedAt != nil {
		return *e.PublishedAt
	}
	return e.UpdatedAt
}

// ListTags returns the sorted union of tag values across all entries.
func (r *EntryRepository) ListTags(ctx context.Context) ([]string, error) {
	raw, err := r.col.Distinct(ctx, "tags", bson.M{})
	if err != nil {
		return nil, eris.Wrap(err, "distinct tags")
	}

	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			tags = append(tags, s)
		}
	}
	sort.Strings(tags)
	return tags, nil
}
