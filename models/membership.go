package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipStatus is the lifecycle state of one member's relationship to a
// club. The string values are part of the stored data and the API surface.
type MembershipStatus string

const (
	// MembershipPendingJoin is a zero-fee membership waiting for the member
	// to complete the free-join step.
	MembershipPendingJoin MembershipStatus = "pending join"
	// MembershipPendingPayment is a paid membership waiting for checkout.
	MembershipPendingPayment MembershipStatus = "pendingPayment"
	// MembershipActive is a fully reconciled membership.
	MembershipActive MembershipStatus = "active"
)

func ValidMembershipStatus(s MembershipStatus) bool {
	switch s {
	case MembershipPendingJoin, MembershipPendingPayment, MembershipActive:
		return true
	}
	return false
}

// CanTransition reports whether a membership may move from one status to
// another. Activation is one-way; the two pending states are interchangeable
// so a manager can fix a mis-filed request before payment.
func (s MembershipStatus) CanTransition(to MembershipStatus) bool {
	if !ValidMembershipStatus(to) || s == to {
		return false
	}
	switch s {
	case MembershipPendingJoin, MembershipPendingPayment:
		return true
	case MembershipActive:
		return false
	}
	return false
}

// MembershipStatusForFee derives the initial status from the club fee.
func MembershipStatusForFee(fee float64) MembershipStatus {
	if fee == 0 {
		return MembershipPendingJoin
	}
	return MembershipPendingPayment
}

type Membership struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID      primitive.ObjectID `bson:"clubId" json:"clubId"`
	ClubName    string             `bson:"clubName,omitempty" json:"clubName,omitempty"`
	MemberEmail string             `bson:"memberEmail" json:"memberEmail"`
	ClubFee     float64            `bson:"clubFee" json:"clubFee"`
	Status      MembershipStatus   `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
