package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID      primitive.ObjectID `bson:"clubId" json:"clubId"`
	ClubEmail   string             `bson:"clubEmail" json:"clubEmail"`
	EventName   string             `bson:"eventName" json:"eventName"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	EventDate   time.Time          `bson:"eventDate" json:"eventDate"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type EventRegistration struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID      primitive.ObjectID `bson:"eventId" json:"eventId"`
	EventName    string             `bson:"eventName,omitempty" json:"eventName,omitempty"`
	UserEmail    string             `bson:"userEmail" json:"userEmail"`
	RegisteredAt time.Time          `bson:"registeredAt" json:"registeredAt"`
}
