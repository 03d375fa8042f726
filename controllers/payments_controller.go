package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/clubnest/club-nest-go/models"
	payments "github.com/clubnest/club-nest-go/payments"
	store "github.com/clubnest/club-nest-go/store"
)

// PaymentWorkflow is the reconciler surface the handlers need.
type PaymentWorkflow interface {
	Checkout(ctx context.Context, req payments.CheckoutRequest) (string, error)
	Confirm(ctx context.Context, sessionID string) (*payments.ConfirmResult, error)
	FreeJoin(ctx context.Context, clubID, membershipID primitive.ObjectID) (*payments.ConfirmResult, error)
}

// PaymentLister lists recorded payments.
type PaymentLister interface {
	List(ctx context.Context, memberEmail string) ([]models.Payment, error)
}

// ---------------- CHECKOUT ----------------
// CreateCheckoutSession opens a hosted checkout for a pending-payment
// membership. The club record supplies the fee and display name; the
// caller's verified email rides along as the checkout customer.
func CreateCheckoutSession(workflow PaymentWorkflow, clubs ClubFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ClubID   string `json:"clubId" binding:"required"`
			MemberID string `json:"memberId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		clubID, err := primitive.ObjectIDFromHex(input.ClubID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
			return
		}
		if _, err := primitive.ObjectIDFromHex(input.MemberID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		club, err := clubs.FindByID(ctx, clubID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch club"})
			return
		}
		if club.MemberShipFee <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "club has no membership fee"})
			return
		}

		url, err := workflow.Checkout(ctx, payments.CheckoutRequest{
			ClubID:       input.ClubID,
			ClubName:     club.ClubName,
			MembershipID: input.MemberID,
			MemberEmail:  callerEmail(c),
			ClubFee:      club.MemberShipFee,
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not create checkout session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

// ---------------- CONFIRM ----------------
// ConfirmPayment is the success-redirect callback. It tolerates replays:
// a transaction that was already reconciled reports "already exists" and
// performs no writes.
func ConfirmPayment(workflow PaymentWorkflow) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		result, err := workflow.Confirm(ctx, sessionID)
		switch {
		case errors.Is(err, payments.ErrUpstream):
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not retrieve checkout session"})
			return
		case errors.Is(err, payments.ErrBadSession):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout session"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not confirm payment"})
			return
		}

		if result.AlreadyProcessed {
			c.JSON(http.StatusOK, gin.H{"message": "already exists", "transactionId": result.TransactionID})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ---------------- FREE JOIN ----------------
// FreeJoin activates a zero-fee membership. Replays report already-processed
// without touching the member count again.
func FreeJoin(workflow PaymentWorkflow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ClubID   string `json:"clubId" binding:"required"`
			MemberID string `json:"memberId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		clubID, err := primitive.ObjectIDFromHex(input.ClubID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
			return
		}
		membershipID, err := primitive.ObjectIDFromHex(input.MemberID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := workflow.FreeJoin(ctx, clubID, membershipID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "membership not found"})
			return
		}
		if errors.Is(err, payments.ErrFeeRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "membership requires payment"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not activate membership"})
			return
		}
		if result.AlreadyProcessed {
			c.JSON(http.StatusOK, gin.H{"message": "already exists"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ---------------- LIST ----------------
func ListPayments(ledger PaymentLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := ledger.List(ctx, c.Query("email"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch payments"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
