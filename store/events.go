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

type Events struct {
	c     *mongo.Collection
	clubs *Clubs
}

func NewEvents(db *mongo.Database, clubs *Clubs) *Events {
	return &Events{c: db.Collection("events"), clubs: clubs}
}

// EventInput carries the client-supplied event fields.
type EventInput struct {
	EventName   string `json:"eventName" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
	EventDate   string `json:"eventDate" binding:"required"`
}

func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Create inserts an event and bumps the owning club's event counter.
func (s *Events) Create(ctx context.Context, clubID primitive.ObjectID, clubEmail string, in EventInput) (*models.Event, error) {
	date, err := parseEventDate(in.EventDate)
	if err != nil {
		return nil, err
	}

	ev := models.Event{
		ID:          primitive.NewObjectID(),
		ClubID:      clubID,
		ClubEmail:   clubEmail,
		EventName:   in.EventName,
		Category:    in.Category,
		Description: in.Description,
		Location:    in.Location,
		EventDate:   date,
		CreatedAt:   time.Now(),
	}
	if _, err := s.c.InsertOne(ctx, ev); err != nil {
		return nil, err
	}
	if err := s.clubs.IncrementEvents(ctx, clubID, 1); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return &ev, nil
}

func (s *Events) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var ev models.Event
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// List returns events, narrowed to one club's email when set.
func (s *Events) List(ctx context.Context, clubEmail string) ([]models.Event, error) {
	filter := bson.M{}
	if clubEmail != "" {
		filter["clubEmail"] = clubEmail
	}
	cursor, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Filtered returns events matching the public browse filters; category "all"
// matches everything.
func (s *Events) Filtered(ctx context.Context, category, search string) ([]models.Event, error) {
	filter := bson.M{}
	if category != "" && category != "all" {
		filter["category"] = bson.M{"$regex": category, "$options": "i"}
	}
	if search != "" {
		filter["eventName"] = bson.M{"$regex": search, "$options": "i"}
	}
	cursor, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Events) Update(ctx context.Context, id primitive.ObjectID, in EventInput) error {
	date, err := parseEventDate(in.EventDate)
	if err != nil {
		return err
	}
	update := bson.M{
		"eventName":   in.EventName,
		"category":    in.Category,
		"description": in.Description,
		"location":    in.Location,
		"eventDate":   date,
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Events) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
