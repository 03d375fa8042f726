package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/clubnest/club-nest-go/models"
)

// Managers stores club-manager applications.
type Managers struct {
	c *mongo.Collection
}

func NewManagers(db *mongo.Database) *Managers {
	return &Managers{c: db.Collection("clubManager")}
}

// Create files a new application. One application per email: a repeat while
// any prior application exists is reported as ErrAlreadyRequested.
func (s *Managers) Create(ctx context.Context, email, reason string) (*models.ManagerApplication, error) {
	err := s.c.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return nil, ErrAlreadyRequested
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	app := models.ManagerApplication{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Reason:    reason,
		Status:    models.ApplicationPending,
		CreatedAt: time.Now(),
	}
	if _, err := s.c.InsertOne(ctx, app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *Managers) List(ctx context.Context) ([]models.ManagerApplication, error) {
	cursor, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	apps := []models.ManagerApplication{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *Managers) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
