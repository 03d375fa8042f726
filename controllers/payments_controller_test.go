package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/clubnest/club-nest-go/models"
	payments "github.com/clubnest/club-nest-go/payments"
	store "github.com/clubnest/club-nest-go/store"
)

type fakeWorkflow struct {
	checkoutURL string
	checkoutReq *payments.CheckoutRequest
	confirm     *payments.ConfirmResult
	err         error
}

func (f *fakeWorkflow) Checkout(ctx context.Context, req payments.CheckoutRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.checkoutReq = &req
	return f.checkoutURL, nil
}

func (f *fakeWorkflow) Confirm(ctx context.Context, sessionID string) (*payments.ConfirmResult, error) {
	return f.confirm, f.err
}

func (f *fakeWorkflow) FreeJoin(ctx context.Context, clubID, membershipID primitive.ObjectID) (*payments.ConfirmResult, error) {
	return f.confirm, f.err
}

func TestCreateCheckoutSessionUsesClubFee(t *testing.T) {
	gin.SetMode(gin.TestMode)
	club := &models.Club{ID: primitive.NewObjectID(), ClubName: "Chess Circle", MemberShipFee: 25}
	workflow := &fakeWorkflow{checkoutURL: "https://checkout.example/cs_1"}

	r := gin.New()
	r.POST("/payments", asCaller("member@example.com"),
		CreateCheckoutSession(workflow, fakeClubFinder{club: club}))

	body := `{"clubId":"` + club.ID.Hex() + `","memberId":"` + primitive.NewObjectID().Hex() + `"}`
	w := postJSON(r, "/payments", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "https://checkout.example/cs_1") {
		t.Errorf("body: %s", w.Body.String())
	}
	if workflow.checkoutReq == nil {
		t.Fatal("checkout never invoked")
	}
	if workflow.checkoutReq.ClubFee != 25 {
		t.Errorf("fee: got %v, want 25 (must come from the club record)", workflow.checkoutReq.ClubFee)
	}
	if workflow.checkoutReq.MemberEmail != "member@example.com" {
		t.Errorf("memberEmail: got %q", workflow.checkoutReq.MemberEmail)
	}
}

func TestCreateCheckoutSessionFreeClub(t *testing.T) {
	gin.SetMode(gin.TestMode)
	club := &models.Club{ID: primitive.NewObjectID(), ClubName: "Chess Circle", MemberShipFee: 0}

	r := gin.New()
	r.POST("/payments", asCaller("member@example.com"),
		CreateCheckoutSession(&fakeWorkflow{}, fakeClubFinder{club: club}))

	body := `{"clubId":"` + club.ID.Hex() + `","memberId":"` + primitive.NewObjectID().Hex() + `"}`
	w := postJSON(r, "/payments", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateCheckoutSessionUpstreamError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	club := &models.Club{ID: primitive.NewObjectID(), ClubName: "Chess Circle", MemberShipFee: 25}

	r := gin.New()
	r.POST("/payments", asCaller("member@example.com"),
		CreateCheckoutSession(&fakeWorkflow{err: payments.ErrUpstream}, fakeClubFinder{club: club}))

	body := `{"clubId":"` + club.ID.Hex() + `","memberId":"` + primitive.NewObjectID().Hex() + `"}`
	w := postJSON(r, "/payments", body)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadGateway)
	}
}

func TestConfirmPaymentReplay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	workflow := &fakeWorkflow{confirm: &payments.ConfirmResult{AlreadyProcessed: true, TransactionID: "pi_123"}}

	r := gin.New()
	r.PATCH("/payment-success", ConfirmPayment(workflow))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/payment-success?session_id=cs_1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "already exists") {
		t.Errorf("body: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "pi_123") {
		t.Errorf("body: %s", w.Body.String())
	}
}

func TestConfirmPaymentMissingSessionID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PATCH("/payment-success", ConfirmPayment(&fakeWorkflow{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/payment-success", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestConfirmPaymentErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"upstream", payments.ErrUpstream, http.StatusBadGateway},
		{"bad session", payments.ErrBadSession, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.PATCH("/payment-success", ConfirmPayment(&fakeWorkflow{err: tt.err}))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/payment-success?session_id=cs_1", nil)
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status: got %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestFreeJoinReplay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	workflow := &fakeWorkflow{confirm: &payments.ConfirmResult{AlreadyProcessed: true}}

	r := gin.New()
	r.POST("/freeJoin", FreeJoin(workflow))

	body := `{"clubId":"` + primitive.NewObjectID().Hex() + `","memberId":"` + primitive.NewObjectID().Hex() + `"}`
	w := postJSON(r, "/freeJoin", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "already exists") {
		t.Errorf("body: %s", w.Body.String())
	}
}

func TestFreeJoinRefusesPaidMembership(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/freeJoin", FreeJoin(&fakeWorkflow{err: payments.ErrFeeRequired}))

	body := `{"clubId":"` + primitive.NewObjectID().Hex() + `","memberId":"` + primitive.NewObjectID().Hex() + `"}`
	w := postJSON(r, "/freeJoin", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "membership requires payment") {
		t.Errorf("body: %s", w.Body.String())
	}
}

func TestFreeJoinUnknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/freeJoin", FreeJoin(&fakeWorkflow{err: store.ErrNotFound}))

	body := `{"clubId":"` + primitive.NewObjectID().Hex() + `","memberId":"` + primitive.NewObjectID().Hex() + `"}`
	w := postJSON(r, "/freeJoin", body)
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusNotFound)
	}
}
