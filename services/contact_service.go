package services

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"flowsite/cmserrors"
	"flowsite/models"
)

// ContactStore is the slice of the contact repository the service uses.
type ContactStore interface {
	Insert(ctx context.Context, c *models.Contact) (primitive.ObjectID, error)
	List(ctx context.Context, status string, limit int64) ([]models.Contact, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// ContactService handles public contact submissions and the admin inbox.
type ContactService struct {
	store ContactStore
}

func NewContactService(store ContactStore) *ContactService {
	return &ContactService{store: store}
}

type SubmitContactInput struct {
	Name    string
	Email   string
	Message string
}

// Submit validates and stores a new contact submission with status "new".
func (s *ContactService) Submit(ctx context.Context, in SubmitContactInput) (*models.Contact, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)
	if name == "" || message == "" {
		return nil, eris.Wrap(cmserrors.ErrValidation, "name and message are required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, eris.Wrap(cmserrors.ErrValidation, "a valid email is required")
	}

	c := &models.Contact{
		Name:    name,
		Email:   email,
		Message: message,
		Status:  models.ContactStatusNew,
	}
	id, err := s.store.Insert(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// List returns submissions newest first, optionally filtered by status.
func (s *ContactService) List(ctx context.Context, status string, limit int) ([]models.Contact, error) {
	if status != "" && !models.ValidContactStatus(status) {
		return nil, eris.Wrap(cmserrors.ErrValidation, "unknown contact status "+status)
	}
	return s.store.List(ctx, status, int64(limit))
}

// UpdateStatus transitions a submission between the admin workflow states.
func (s *ContactService) UpdateStatus(ctx context.Context, hexID, status string) error {
	if !models.ValidContactStatus(status) {
		return eris.Wrap(cmserrors.ErrValidation, "unknown contact status "+status)
	}
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return eris.Wrap(cmserrors.ErrNotFound, "contact "+hexID)
	}
	return s.store.UpdateStatus(ctx, id, status)
}
