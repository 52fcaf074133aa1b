package dto

import (
	"time"

	"flowsite/models"
)

// ContactDTO exposes a contact submission in the admin inbox.
type ContactDTO struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
}

// NewContactDTO constructs ContactDTO from models.Contact.
func NewContactDTO(c models.Contact) ContactDTO {
	return ContactDTO{
		ID:        c.ID.Hex(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		Status:    c.Status,
	}
}

// SubmitContactRequest is the public contact form body.
type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// UpdateContactStatusRequest transitions a submission's workflow status.
type UpdateContactStatusRequest struct {
	Status string `json:"status"`
}
