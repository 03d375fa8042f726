package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClubStatus string

const (
	ClubPending  ClubStatus = "pending"
	ClubApproved ClubStatus = "approved"
	ClubRejected ClubStatus = "rejected"
)

type Club struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ManagerEmail  string             `bson:"managerEmail" json:"managerEmail"`
	ClubName      string             `bson:"clubName" json:"clubName"`
	Category      string             `bson:"category" json:"category"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	BannerURL     string             `bson:"bannerUrl,omitempty" json:"bannerUrl,omitempty"`
	MemberShipFee float64            `bson:"memberShipFee" json:"memberShipFee"`
	Status        ClubStatus         `bson:"status" json:"status"`
	MembersCount  int64              `bson:"membersCount" json:"membersCount"`
	EventsCount   int64              `bson:"eventsCount" json:"eventsCount"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
