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

type Clubs struct {
	c *mongo.Collection
}

func NewClubs(db *mongo.Database) *Clubs {
	return &Clubs{c: db.Collection("clubs")}
}

// ClubInput carries the client-supplied club fields for create and edit.
type ClubInput struct {
	ClubName      string     `json:"clubName" binding:"required"`
	Category      string     `json:"category"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	BannerURL     string     `json:"bannerUrl"`
	MemberShipFee models.Fee `json:"memberShipFee"`
}

// Create inserts a new club awaiting review.
func (s *Clubs) Create(ctx context.Context, managerEmail string, in ClubInput) (*models.Club, error) {
	club := models.Club{
		ID:            primitive.NewObjectID(),
		ManagerEmail:  managerEmail,
		ClubName:      in.ClubName,
		Category:      in.Category,
		Description:   in.Description,
		Location:      in.Location,
		BannerURL:     in.BannerURL,
		MemberShipFee: float64(in.MemberShipFee),
		Status:        models.ClubPending,
		CreatedAt:     time.Now(),
	}
	if _, err := s.c.InsertOne(ctx, club); err != nil {
		return nil, err
	}
	return &club, nil
}

func (s *Clubs) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Club, error) {
	var club models.Club
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&club)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// List returns clubs, optionally narrowed by manager email and/or status.
func (s *Clubs) List(ctx context.Context, managerEmail string, status models.ClubStatus) ([]models.Club, error) {
	filter := bson.M{}
	if managerEmail != "" {
		filter["managerEmail"] = managerEmail
	}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	clubs := []models.Club{}
	if err := cursor.All(ctx, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// clubBrowseFilter builds the public browse query: approved clubs only,
// category "all" (or empty) matches everything, both matches are
// case-insensitive substring matches.
func clubBrowseFilter(category, search string) bson.M {
	filter := bson.M{"status": models.ClubApproved}
	if category != "" && category != "all" {
		filter["category"] = bson.M{"$regex": category, "$options": "i"}
	}
	if search != "" {
		filter["clubName"] = bson.M{"$regex": search, "$options": "i"}
	}
	return filter
}

// Filtered returns approved clubs matching the public browse filters.
func (s *Clubs) Filtered(ctx context.Context, category, search string) ([]models.Club, error) {
	cursor, err := s.c.Find(ctx, clubBrowseFilter(category, search))
	if err != nil {
		return nil, err
	}
	clubs := []models.Club{}
	if err := cursor.All(ctx, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// clubUpdateDoc builds the edit document. Every edit sends the club back to
// review: status is reset to pending regardless of what it was.
func clubUpdateDoc(in ClubInput) bson.M {
	return bson.M{
		"clubName":      in.ClubName,
		"category":      in.Category,
		"description":   in.Description,
		"location":      in.Location,
		"bannerUrl":     in.BannerURL,
		"memberShipFee": float64(in.MemberShipFee),
		"status":        models.ClubPending,
	}
}

// Update applies an edit and sends the club back to review.
func (s *Clubs) Update(ctx context.Context, id primitive.ObjectID, in ClubInput) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": clubUpdateDoc(in)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Clubs) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClubStatus) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Clubs) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementMembers bumps the club's member counter.
func (s *Clubs) IncrementMembers(ctx context.Context, id primitive.ObjectID, by int) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"membersCount": by}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementEvents bumps the club's event counter.
func (s *Clubs) IncrementEvents(ctx context.Context, id primitive.ObjectID, by int) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"eventsCount": by}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
