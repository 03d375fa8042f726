package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records one confirmed charge. TransactionID is the provider's
// payment-intent id and is unique in the collection; it is the idempotency
// key for reconciliation.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	MemberEmail   string             `bson:"memberEmail" json:"memberEmail"`
	ClubID        string             `bson:"clubId" json:"clubId"`
	ClubName      string             `bson:"clubName" json:"clubName"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	PaidAt        time.Time          `bson:"PaidAt" json:"PaidAt"`
}
