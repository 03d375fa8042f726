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

type Users struct {
	c *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{c: db.Collection("users")}
}

// Create inserts a new user with the member role. A repeated sign-up for the
// same email is reported as ErrAlreadyExists, not treated as a failure.
func (s *Users) Create(ctx context.Context, name, email string) (*models.User, error) {
	err := s.c.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return nil, ErrAlreadyExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	u := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Role:      models.RoleMember,
		CreatedAt: time.Now(),
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Users) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// RoleByEmail resolves the role for an email, defaulting to member when the
// user record does not exist yet.
func (s *Users) RoleByEmail(ctx context.Context, email string) (models.Role, error) {
	u, err := s.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return models.RoleMember, nil
	}
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (s *Users) SetRoleByID(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Users) SetRoleByEmail(ctx context.Context, email string, role models.Role) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
