package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact submission statuses.
const (
	ContactStatusNew       = "new"
	ContactStatusContacted = "contacted"
	ContactStatusClosed    = "closed"
)

// ValidContactStatus reports whether s is a known status value.
func ValidContactStatus(s string) bool {
	switch s {
	case ContactStatusNew, ContactStatusContacted, ContactStatusClosed:
		return true
	}
	return false
}

// Contact is a public form submission.
// Collection: contacts
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Message   string             `bson:"message" json:"message"`
	Status    string             `bson:"status" json:"status"`
}
