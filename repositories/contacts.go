package repositories

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flowsite/cmserrors"
	"flowsite/models"
)

type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection("contacts")}
}

// Insert stores a new contact submission with status "new".
func (r *ContactRepository) Insert(ctx context.Context, c *models.Contact) (primitive.ObjectID, error) {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = models.ContactStatusNew
	}

	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return primitive.NilObjectID, eris.Wrap(err, "insert contact")
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// List returns contacts newest first, optionally filtered by status.
func (r *ContactRepository) List(ctx context.Context, status string, limit int64) ([]models.Contact, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, eris.Wrap(err, "find contacts")
	}
	defer cur.Close(ctx)

	var results []models.Contact
	for cur.Next(ctx) {
		var c models.Contact
		if err := cur.Decode(&c); err != nil {
			return nil, eris.Wrap(err, "decode contact")
		}
		results = append(results, c)
	}
	if err := cur.Err(); err != nil {
		return nil, eris.Wrap(err, "iterate contacts")
	}
	return results, nil
}

// UpdateStatus transitions a contact's status, refreshing updated_at.
func (r *ContactRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return eris.Wrap(err, "update contact status")
	}
	if res.MatchedCount == 0 {
		return eris.Wrap(cmserrors.ErrNotFound, "contact "+id.Hex())
	}
	return nil
}
