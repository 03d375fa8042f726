package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the coarse authorization level attached to a user record.
type Role string

const (
	RoleMember      Role = "member"
	RoleClubManager Role = "Club-Manager"
	RoleAdmin       Role = "admin"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleMember, RoleClubManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ApplicationStatus is the lifecycle of a club-manager application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ManagerApplication is a request by a user to become a club manager.
// Approval flips the user's role to Club-Manager, rejection back to member.
type ManagerApplication struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Status    ApplicationStatus  `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
