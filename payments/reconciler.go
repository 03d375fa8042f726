package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	models "github.com/clubnest/club-nest-go/models"
	store "github.com/clubnest/club-nest-go/store"
)

// ErrUpstream marks a payment-provider failure; callers surface it as a
// gateway error and never retry locally.
var ErrUpstream = errors.New("payment provider request failed")

// ErrBadSession marks a session whose metadata cannot be resolved back to a
// club and membership.
var ErrBadSession = errors.New("checkout session references unknown records")

// ErrFeeRequired marks a free-join attempt on a membership that carries a
// fee; those must go through checkout.
var ErrFeeRequired = errors.New("membership requires payment")

var errAlreadyActive = errors.New("membership already active")

// PaymentLedger is the slice of the payments store the reconciler needs.
type PaymentLedger interface {
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	Insert(ctx context.Context, p models.Payment) (*models.Payment, error)
}

// MembershipLedger reads and activates memberships.
type MembershipLedger interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Membership, error)
	Activate(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// ClubCounter bumps club member counts.
type ClubCounter interface {
	IncrementMembers(ctx context.Context, id primitive.ObjectID, by int) error
}

// TxnRunner executes fn atomically. In production this is the Mongo
// multi-document transaction from the db package.
type TxnRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// ReceiptMailer sends a best-effort payment receipt.
type ReceiptMailer interface {
	SendReceipt(to, clubName string, amount float64, transactionID string) error
}

// ConfirmResult reports the outcome of one confirmation or free join.
type ConfirmResult struct {
	Success          bool    `json:"success"`
	AlreadyProcessed bool    `json:"alreadyProcessed,omitempty"`
	TransactionID    string  `json:"transactionId,omitempty"`
	ClubID           string  `json:"clubId,omitempty"`
	ClubName         string  `json:"clubName,omitempty"`
	Amount           float64 `json:"amount,omitempty"`
	Currency         string  `json:"currency,omitempty"`
}

// Reconciler owns the membership payment workflow: checkout session
// creation, confirmation of paid sessions, and the zero-fee shortcut.
//
// Confirmation must be replay-safe: the success callback is a client
// redirect, so page reloads and concurrent tabs re-invoke it. The unique
// transactionId index makes the payment insert the commit point; everything
// coupled to it runs in the same transaction.
type Reconciler struct {
	provider    Provider
	payments    PaymentLedger
	memberships MembershipLedger
	clubs       ClubCounter
	txn         TxnRunner
	mailer      ReceiptMailer
	log         *zap.Logger
}

func NewReconciler(provider Provider, payments PaymentLedger, memberships MembershipLedger, clubs ClubCounter, txn TxnRunner, mailer ReceiptMailer, log *zap.Logger) *Reconciler {
	return &Reconciler{
		provider:    provider,
		payments:    payments,
		memberships: memberships,
		clubs:       clubs,
		txn:         txn,
		mailer:      mailer,
		log:         log,
	}
}

// Checkout opens a hosted checkout session and returns the redirect URL.
func (r *Reconciler) Checkout(ctx context.Context, req CheckoutRequest) (string, error) {
	sess, err := r.provider.CreateCheckoutSession(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return sess.URL, nil
}

// Confirm reconciles a completed checkout session. At most one payment
// record, one membership activation and one membersCount increment happen
// per transaction id, no matter how often or how concurrently the callback
// fires.
func (r *Reconciler) Confirm(ctx context.Context, sessionID string) (*ConfirmResult, error) {
	sess, err := r.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	transactionID := sess.TransactionID
	if transactionID != "" {
		_, err := r.payments.FindByTransactionID(ctx, transactionID)
		if err == nil {
			return &ConfirmResult{AlreadyProcessed: true, TransactionID: transactionID}, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	if sess.PaymentStatus != Paid {
		return &ConfirmResult{Success: false}, nil
	}

	clubID, err := primitive.ObjectIDFromHex(sess.Metadata["clubId"])
	if err != nil {
		return nil, fmt.Errorf("%w: clubId %q", ErrBadSession, sess.Metadata["clubId"])
	}
	membershipID, err := primitive.ObjectIDFromHex(sess.Metadata["memberId"])
	if err != nil {
		return nil, fmt.Errorf("%w: memberId %q", ErrBadSession, sess.Metadata["memberId"])
	}

	amount := float64(sess.AmountTotal) / 100
	payment := models.Payment{
		TransactionID: transactionID,
		Amount:        amount,
		Currency:      sess.Currency,
		MemberEmail:   sess.CustomerEmail,
		ClubID:        sess.Metadata["clubId"],
		ClubName:      sess.Metadata["clubName"],
		PaymentStatus: sess.PaymentStatus,
		PaidAt:        time.Now(),
	}

	err = r.txn(ctx, func(ctx context.Context) error {
		if err := r.clubs.IncrementMembers(ctx, clubID, 1); err != nil {
			return err
		}
		if _, err := r.payments.Insert(ctx, payment); err != nil {
			return err
		}
		// A missing membership record does not void the payment itself.
		if _, err := r.memberships.Activate(ctx, membershipID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return nil
	})
	if errors.Is(err, store.ErrDuplicateTransaction) {
		// Lost a race with a concurrent confirmation; the whole transaction
		// rolled back, so nothing was double-applied.
		return &ConfirmResult{AlreadyProcessed: true, TransactionID: transactionID}, nil
	}
	if err != nil {
		return nil, err
	}

	r.sendReceipt(payment)

	return &ConfirmResult{
		Success:       true,
		TransactionID: transactionID,
		ClubID:        payment.ClubID,
		ClubName:      payment.ClubName,
		Amount:        amount,
		Currency:      payment.Currency,
	}, nil
}

// FreeJoin activates a zero-fee membership without touching the provider.
// The membership flip is the commit point: only the call that moves the
// status to active increments the club counter, so replays cannot
// double-count. Memberships that carry a fee are refused here; they must be
// reconciled through a paid checkout session.
func (r *Reconciler) FreeJoin(ctx context.Context, clubID, membershipID primitive.ObjectID) (*ConfirmResult, error) {
	m, err := r.memberships.FindByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if m.ClubFee != 0 {
		return nil, ErrFeeRequired
	}

	err = r.txn(ctx, func(ctx context.Context) error {
		flipped, err := r.memberships.Activate(ctx, membershipID)
		if err != nil {
			return err
		}
		if !flipped {
			return errAlreadyActive
		}
		return r.clubs.IncrementMembers(ctx, clubID, 1)
	})
	if errors.Is(err, errAlreadyActive) {
		return &ConfirmResult{AlreadyProcessed: true, ClubID: clubID.Hex()}, nil
	}
	if err != nil {
		return nil, err
	}
	return &ConfirmResult{Success: true, ClubID: clubID.Hex()}, nil
}

func (r *Reconciler) sendReceipt(p models.Payment) {
	if r.mailer == nil || p.MemberEmail == "" {
		return
	}
	if err := r.mailer.SendReceipt(p.MemberEmail, p.ClubName, p.Amount, p.TransactionID); err != nil {
		r.log.Warn("receipt email failed",
			zap.String("memberEmail", p.MemberEmail),
			zap.String("transactionId", p.TransactionID),
			zap.Error(err))
	}
}
