package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"flowsite/cmserrors"
	"flowsite/models"
)

type fakeContactStore struct {
	contacts []models.Contact
}

func (f *fakeContactStore) Insert(ctx context.Context, c *models.Contact) (primitive.ObjectID, error) {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.contacts = append(f.contacts, *c)
	return c.ID, nil
}

func (f *fakeContactStore) List(ctx context.Context, status string, limit int64) ([]models.Contact, error) {
	var out []models.Contact
	for _, c := range f.contacts {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContactStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			f.contacts[i].Status = status
			return nil
		}
	}
	return cmserrors.ErrNotFound
}

func TestSubmitStoresNewContact(t *testing.T) {
	store := &fakeContactStore{}
	svc := NewContactService(store)

	c, err := svc.Submit(context.Background(), SubmitContactInput{
		Name:    "  Dana  ",
		Email:   "dana@example.com",
		Message: "Tell me more about workflow automation.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana", c.Name)
	assert.Equal(t, models.ContactStatusNew, c.Status)
	assert.False(t, c.ID.IsZero())
}

func TestSubmitValidatesFields(t *testing.T) {
	svc := NewContactService(&fakeContactStore{})

	cases := []SubmitContactInput{
		{Email: "a@b.com", Message: "hi"},
		{Name: "Dana", Email: "a@b.com"},
		{Name: "Dana", Email: "not-an-email", Message: "hi"},
	}
	for _, in := range cases {
		_, err := svc.Submit(context.Background(), in)
		require.Error(t, err, "input=%+v", in)
		assert.True(t, cmserrors.IsValidation(err))
	}
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc := NewContactService(&fakeContactStore{})

	_, err := svc.List(context.Background(), "bogus", 10)
	require.Error(t, err)
	assert.True(t, cmserrors.IsValidation(err))
}

func TestUpdateStatusTransitions(t *testing.T) {
	store := &fakeContactStore{}
	svc := NewContactService(store)

	c, err := svc.Submit(context.Background(), SubmitContactInput{
		Name: "Dana", Email: "dana@example.com", Message: "hi",
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), c.ID.Hex(), models.ContactStatusContacted))
	assert.Equal(t, models.ContactStatusContacted, store.contacts[0].Status)

	err = svc.UpdateStatus(context.Background(), c.ID.Hex(), "archived")
	require.Error(t, err)
	assert.True(t, cmserrors.IsValidation(err))

	err = svc.UpdateStatus(context.Background(), "not-a-hex-id", models.ContactStatusClosed)
	require.Error(t, err)
	assert.True(t, cmserrors.IsNotFound(err))
}
