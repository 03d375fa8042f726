package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/clubnest/club-nest-go/models"
)

// Registrations stores event sign-ups.
type Registrations struct {
	c *mongo.Collection
}

func NewRegistrations(db *mongo.Database) *Registrations {
	return &Registrations{c: db.Collection("eventRegistration")}
}

func (s *Registrations) Create(ctx context.Context, eventID primitive.ObjectID, eventName, userEmail string) (*models.EventRegistration, error) {
	reg := models.EventRegistration{
		ID:           primitive.NewObjectID(),
		EventID:      eventID,
		EventName:    eventName,
		UserEmail:    userEmail,
		RegisteredAt: time.Now(),
	}
	if _, err := s.c.InsertOne(ctx, reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// List returns registrations, narrowed to one user when email is set.
func (s *Registrations) List(ctx context.Context, userEmail string) ([]models.EventRegistration, error) {
	filter := bson.M{}
	if userEmail != "" {
		filter["userEmail"] = userEmail
	}
	cursor, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	regs := []models.EventRegistration{}
	if err := cursor.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (s *Registrations) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
