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

type Memberships struct {
	c *mongo.Collection
}

func NewMemberships(db *mongo.Database) *Memberships {
	return &Memberships{c: db.Collection("membership")}
}

// Create starts a membership. The initial status follows the club fee: free
// clubs start at "pending join", paid clubs at "pendingPayment". A second
// request for the same (club, member) pair is refused while an earlier one
// is still pending or already active; the unique (clubId, memberEmail) index
// enforces this even when two requests race past the pre-check.
func (s *Memberships) Create(ctx context.Context, clubID primitive.ObjectID, clubName, memberEmail string, clubFee float64) (*models.Membership, error) {
	err := s.c.FindOne(ctx, bson.M{"clubId": clubID, "memberEmail": memberEmail}).Err()
	if err == nil {
		return nil, ErrAlreadyRequested
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	m := models.Membership{
		ID:          primitive.NewObjectID(),
		ClubID:      clubID,
		ClubName:    clubName,
		MemberEmail: memberEmail,
		ClubFee:     clubFee,
		Status:      models.MembershipStatusForFee(clubFee),
		CreatedAt:   time.Now(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return nil, membershipCreateErr(err)
	}
	return &m, nil
}

// membershipCreateErr maps an insert-time conflict on the unique
// (clubId, memberEmail) index to the same error the pre-check reports.
func membershipCreateErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyRequested
	}
	return err
}

func (s *Memberships) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Membership, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns memberships, narrowed to one member when email is set.
func (s *Memberships) List(ctx context.Context, memberEmail string) ([]models.Membership, error) {
	filter := bson.M{}
	if memberEmail != "" {
		filter["memberEmail"] = memberEmail
	}
	cursor, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	memberships := []models.Membership{}
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// SetStatus applies a manager-requested status change after checking the
// move is legal for the membership's current state.
func (s *Memberships) SetStatus(ctx context.Context, id primitive.ObjectID, to models.MembershipStatus) error {
	m, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !m.Status.CanTransition(to) {
		return ErrBadTransition
	}

	// The filter repeats the current status so a concurrent change loses
	// cleanly instead of being overwritten.
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": m.Status},
		bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrBadTransition
	}
	return nil
}

// Activate flips a membership to active. It reports whether this call made
// the change: a membership that is already active is left alone and the
// caller must not apply any downstream effects again.
func (s *Memberships) Activate(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.MembershipActive}},
		bson.M{"$set": bson.M{"status": models.MembershipActive}})
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}

	// Nothing changed: either the membership is already active or the id is
	// unknown. Tell those cases apart for the caller.
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
		return false, ErrNotFound
	} else if err != nil {
		return false, err
	}
	return false, nil
}
