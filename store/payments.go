package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/clubnest/club-nest-go/models"
)

type Payments struct {
	c *mongo.Collection
}

func NewPayments(db *mongo.Database) *Payments {
	return &Payments{c: db.Collection("payments")}
}

// Insert records a payment. The collection carries a unique index on
// transactionId, so a replayed confirmation surfaces here as
// ErrDuplicateTransaction no matter how the calls interleave.
func (s *Payments) Insert(ctx context.Context, p models.Payment) (*models.Payment, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateTransaction
		}
		return nil, err
	}
	return &p, nil
}

func (s *Payments) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var p models.Payment
	err := s.c.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns payments, narrowed to one member when email is set.
func (s *Payments) List(ctx context.Context, memberEmail string) ([]models.Payment, error) {
	filter := bson.M{}
	if memberEmail != "" {
		filter["memberEmail"] = memberEmail
	}
	cursor, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
