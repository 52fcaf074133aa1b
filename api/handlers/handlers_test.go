package handlers

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"flowsite/cmserrors"
	"flowsite/models"
	"flowsite/repositories"
)

func errNotFoundStub() error {
	return eris.Wrap(cmserrors.ErrNotFound, "not in stub store")
}

// stubEntryStore backs handler tests with a slice. Listing ignores cursors;
// pagination behavior is covered at the service and repository level.
type stubEntryStore struct {
	entries []models.ContentEntry
	err     error
}

func (s *stubEntryStore) Insert(ctx context.Context, e *models.ContentEntry) (primitive.ObjectID, error) {
	if s.err != nil {
		return primitive.NilObjectID, s.err
	}
	e.ID = primitive.NewObjectID()
	s.entries = append(s.entries, *e)
	return e.ID, nil
}

func (s *stubEntryStore) Replace(ctx context.Context, id primitive.ObjectID, e *models.ContentEntry) error {
	if s.err != nil {
		return s.err
	}
	for i := range s.entries {
		if s.entries[i].ID == id {
			e.ID = id
			s.entries[i] = *e
			return nil
		}
	}
	return errNotFoundStub()
}

func (s *stubEntryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return errNotFoundStub()
}

func (s *stubEntryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ContentEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.entries {
		if s.entries[i].ID == id {
			e := s.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (s *stubEntryStore) FindBySlugExact(ctx context.Context, lang, slug string) (*models.ContentEntry, error) {
	for i := range s.entries {
		if s.entries[i].Published && s.entries[i].Slug[lang] == slug {
			e := s.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (s *stubEntryStore) FindPublished(ctx context.Context, limit int64) ([]models.ContentEntry, error) {
	out := []models.ContentEntry{}
	for _, e := range s.entries {
		if e.Published {
			out = append(out, e)
		}
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubEntryStore) FindAny(ctx context.Context, limit int64) ([]models.ContentEntry, error) {
	if int64(len(s.entries)) > limit {
		return s.entries[:limit], nil
	}
	return s.entries, nil
}

func (s *stubEntryStore) List(ctx context.Context, opt repositories.ListEntriesOptions) (repositories.EntryPage, error) {
	if s.err != nil {
		return repositories.EntryPage{}, s.err
	}
	out := []models.ContentEntry{}
	for _, e := range s.entries {
		if opt.Published != nil && e.Published != *opt.Published {
			continue
		}
		out = append(out, e)
	}
	return repositories.EntryPage{Entries: out}, nil
}

func (s *stubEntryStore) ListTags(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, e := range s.entries {
		for _, t := range e.Tags {
			if !seen[strings.ToLower(t)] {
				seen[strings.ToLower(t)] = true
				out = append(out, t)
			}
		}
	}
	return out, nil
}

type stubImageDeleter struct {
	deleted []string
}

func (d *stubImageDeleter) Delete(ctx context.Context, ref string) error {
	d.deleted = append(d.deleted, ref)
	return nil
}

type stubContactStore struct {
	contacts []models.Contact
}

func (s *stubContactStore) Insert(ctx context.Context, c *models.Contact) (primitive.ObjectID, error) {
	c.ID = primitive.NewObjectID()
	s.contacts = append(s.contacts, *c)
	return c.ID, nil
}

func (s *stubContactStore) List(ctx context.Context, status string, limit int64) ([]models.Contact, error) {
	out := []models.Contact{}
	for _, c := range s.contacts {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubContactStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	for i := range s.contacts {
		if s.contacts[i].ID == id {
			s.contacts[i].Status = status
			return nil
		}
	}
	return errNotFoundStub()
}
