package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/clubnest/club-nest-go/models"
)

// Stats computes dashboard rollups with aggregation pipelines. Every rollup
// is computed on demand; a zero-match group reports 0.
type Stats struct {
	db *mongo.Database
}

func NewStats(db *mongo.Database) *Stats {
	return &Stats{db: db}
}

// StatRow is one dashboard counter in the shape the frontend renders.
type StatRow struct {
	Status string  `json:"status"`
	Count  float64 `json:"count"`
}

// ManagerStats is the rollup for one club manager's dashboard.
type ManagerStats struct {
	TotalClubs    float64 `json:"totalClubs"`
	TotalEvents   float64 `json:"totalEvents"`
	TotalEarnings float64 `json:"totalEarnings"`
	TotalMembers  float64 `json:"totalMembers"`
}

// MemberStats is the rollup for one member's dashboard.
type MemberStats struct {
	TotalClubsJoined    float64 `json:"totalClubsJoined"`
	TotalEventsAttended float64 `json:"totalEventsAttended"`
	TotalSpent          float64 `json:"totalSpent"`
}

// DayBounds returns local midnight for now's day and for the following day.
func DayBounds(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// WeekStart returns local midnight six days before now's day, so the
// [WeekStart, end-of-today) window spans seven days inclusive of today.
func WeekStart(now time.Time) time.Time {
	start, _ := DayBounds(now)
	return start.AddDate(0, 0, -6)
}

func (s *Stats) groupCount(ctx context.Context, collection string, match bson.M) (float64, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": nil, "count": bson.M{"$sum": 1}}},
		{"$project": bson.M{"_id": 0, "count": 1}},
	}
	return s.runSingle(ctx, collection, pipeline, "count")
}

func (s *Stats) groupSum(ctx context.Context, collection string, match bson.M, field string) (float64, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$" + field}}},
		{"$project": bson.M{"_id": 0, "total": 1}},
	}
	return s.runSingle(ctx, collection, pipeline, "total")
}

func (s *Stats) runSingle(ctx context.Context, collection string, pipeline []bson.M, key string) (float64, error) {
	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	switch v := rows[0][key].(type) {
	case float64:
		return v, nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, nil
}

// Admin returns the platform-wide dashboard rows.
func (s *Stats) Admin(ctx context.Context, now time.Time) ([]StatRow, error) {
	totalClubs, err := s.groupCount(ctx, "clubs", bson.M{})
	if err != nil {
		return nil, err
	}
	totalEvents, err := s.groupCount(ctx, "events", bson.M{})
	if err != nil {
		return nil, err
	}
	totalMembers, err := s.groupCount(ctx, "users", bson.M{"role": models.RoleMember})
	if err != nil {
		return nil, err
	}
	totalEarnings, err := s.groupSum(ctx, "payments", bson.M{"paymentStatus": "paid"}, "amount")
	if err != nil {
		return nil, err
	}

	today, tomorrow := DayBounds(now)
	daily, err := s.groupSum(ctx, "payments", bson.M{
		"paymentStatus": "paid",
		"PaidAt":        bson.M{"$gte": today, "$lt": tomorrow},
	}, "amount")
	if err != nil {
		return nil, err
	}
	weekly, err := s.groupSum(ctx, "payments", bson.M{
		"paymentStatus": "paid",
		"PaidAt":        bson.M{"$gte": WeekStart(now), "$lt": tomorrow},
	}, "amount")
	if err != nil {
		return nil, err
	}

	return []StatRow{
		{Status: "Total Clubs", Count: totalClubs},
		{Status: "Total Events", Count: totalEvents},
		{Status: "Total Members", Count: totalMembers},
		{Status: "Total Earnings", Count: totalEarnings},
		{Status: "Daily Earnings", Count: daily},
		{Status: "Weekly Earnings", Count: weekly},
	}, nil
}

// Manager returns the rollup scoped to one manager's clubs. Payments store
// the club id as a hex string, so the earnings match joins on those strings.
func (s *Stats) Manager(ctx context.Context, managerEmail string) (*ManagerStats, error) {
	totalClubs, err := s.groupCount(ctx, "clubs", bson.M{"managerEmail": managerEmail})
	if err != nil {
		return nil, err
	}
	totalEvents, err := s.groupCount(ctx, "events", bson.M{"clubEmail": managerEmail})
	if err != nil {
		return nil, err
	}
	totalMembers, err := s.groupSum(ctx, "clubs", bson.M{"managerEmail": managerEmail}, "membersCount")
	if err != nil {
		return nil, err
	}

	cursor, err := s.db.Collection("clubs").Find(ctx, bson.M{"managerEmail": managerEmail})
	if err != nil {
		return nil, err
	}
	var clubs []models.Club
	if err := cursor.All(ctx, &clubs); err != nil {
		return nil, err
	}
	clubIDs := make([]string, 0, len(clubs))
	for _, club := range clubs {
		clubIDs = append(clubIDs, club.ID.Hex())
	}

	totalEarnings := 0.0
	if len(clubIDs) > 0 {
		totalEarnings, err = s.groupSum(ctx, "payments", bson.M{
			"clubId":        bson.M{"$in": clubIDs},
			"paymentStatus": "paid",
		}, "amount")
		if err != nil {
			return nil, err
		}
	}

	return &ManagerStats{
		TotalClubs:    totalClubs,
		TotalEvents:   totalEvents,
		TotalEarnings: totalEarnings,
		TotalMembers:  totalMembers,
	}, nil
}

// Member returns the rollup scoped to one member.
func (s *Stats) Member(ctx context.Context, email string) (*MemberStats, error) {
	joined, err := s.groupCount(ctx, "membership", bson.M{
		"memberEmail": email,
		"status":      models.MembershipActive,
	})
	if err != nil {
		return nil, err
	}
	attended, err := s.groupCount(ctx, "eventRegistration", bson.M{"userEmail": email})
	if err != nil {
		return nil, err
	}
	spent, err := s.groupSum(ctx, "payments", bson.M{
		"memberEmail":   email,
		"paymentStatus": "paid",
	}, "amount")
	if err != nil {
		return nil, err
	}

	return &MemberStats{
		TotalClubsJoined:    joined,
		TotalEventsAttended: attended,
		TotalSpent:          spent,
	}, nil
}
