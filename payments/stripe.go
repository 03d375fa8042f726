package payments

import (
	"context"
	"fmt"
	"math"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeProvider implements Provider over Stripe hosted checkout.
type StripeProvider struct {
	api        *client.API
	siteDomain string
}

// NewStripeProvider builds a provider with its own API client; nothing is
// stored in stripe-go's package-level state.
func NewStripeProvider(secretKey, siteDomain string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api, siteDomain: siteDomain}
}

// unitAmount converts a fee in whole currency units to minor units. The
// product is rounded, not truncated: fees like 1.15 have no exact float64
// representation and truncation would drop a cent.
func unitAmount(fee float64) int64 {
	return int64(math.Round(fee * 100))
}

// CreateCheckoutSession opens a hosted checkout page for the club fee. The
// membership context rides along in session metadata so the success callback
// can reconcile without any server-side session state.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error) {
	amount := unitAmount(req.ClubFee)

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Please pay for: %s", req.ClubName)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(req.MemberEmail),
		SuccessURL:    stripe.String(p.siteDomain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(p.siteDomain + "/dashboard/payment-canceled"),
	}
	params.Context = ctx
	params.AddMetadata("clubId", req.ClubID)
	params.AddMetadata("clubName", req.ClubName)
	params.AddMetadata("memberId", req.MembershipID)

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(sess), nil
}

// RetrieveSession fetches a session by id after the client returns from
// checkout.
func (p *StripeProvider) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(sess), nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *Session {
	out := &Session{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		CustomerEmail: sess.CustomerEmail,
		Metadata:      sess.Metadata,
	}
	if sess.PaymentIntent != nil {
		out.TransactionID = sess.PaymentIntent.ID
	}
	if out.CustomerEmail == "" && sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
	}
	return out
}
