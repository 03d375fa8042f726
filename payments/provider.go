package payments

import "context"

// CheckoutRequest carries what the provider needs to build a hosted checkout
// page for one membership.
type CheckoutRequest struct {
	ClubID       string
	ClubName     string
	MembershipID string
	MemberEmail  string
	ClubFee      float64
}

// Session is the provider-neutral view of a checkout session.
type Session struct {
	ID            string
	URL           string
	TransactionID string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

// Paid is the provider's payment status for a settled session.
const Paid = "paid"

// Provider creates and retrieves hosted checkout sessions.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}
