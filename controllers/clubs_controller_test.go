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
	store "github.com/clubnest/club-nest-go/store"
)

type fakeClubs struct {
	created      []store.ClubInput
	createdBy    []string
	club         *models.Club
	statusSet    models.ClubStatus
	deleted      []primitive.ObjectID
	filteredArgs [2]string
	err          error
}

func (f *fakeClubs) Create(ctx context.Context, managerEmail string, in store.ClubInput) (*models.Club, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	f.createdBy = append(f.createdBy, managerEmail)
	return &models.Club{
		ID:            primitive.NewObjectID(),
		ManagerEmail:  managerEmail,
		ClubName:      in.ClubName,
		MemberShipFee: float64(in.MemberShipFee),
		Status:        models.ClubPending,
	}, nil
}

func (f *fakeClubs) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Club, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.club, nil
}

func (f *fakeClubs) List(ctx context.Context, managerEmail string, status models.ClubStatus) ([]models.Club, error) {
	return nil, f.err
}

func (f *fakeClubs) Filtered(ctx context.Context, category, search string) ([]models.Club, error) {
	f.filteredArgs = [2]string{category, search}
	return []models.Club{}, f.err
}

func (f *fakeClubs) Update(ctx context.Context, id primitive.ObjectID, in store.ClubInput) error {
	return f.err
}

func (f *fakeClubs) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClubStatus) error {
	f.statusSet = status
	return f.err
}

func (f *fakeClubs) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func TestCreateClubStringFee(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clubs := &fakeClubs{}

	r := gin.New()
	r.POST("/addClub", asCaller("manager@example.com"), CreateClub(clubs))

	// Clients send the fee as either a JSON number or a quoted string.
	w := postJSON(r, "/addClub", `{"clubName":"Chess Circle","category":"games","memberShipFee":"25"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", w.Code, http.StatusCreated, w.Body.String())
	}
	if len(clubs.created) != 1 {
		t.Fatalf("created: got %d, want 1", len(clubs.created))
	}
	if got := float64(clubs.created[0].MemberShipFee); got != 25 {
		t.Errorf("fee: got %v, want 25", got)
	}
	if clubs.createdBy[0] != "manager@example.com" {
		t.Errorf("managerEmail: got %q", clubs.createdBy[0])
	}
}

func TestCreateClubNumericFee(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clubs := &fakeClubs{}

	r := gin.New()
	r.POST("/addClub", asCaller("manager@example.com"), CreateClub(clubs))

	w := postJSON(r, "/addClub", `{"clubName":"Chess Circle","memberShipFee":12.5}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", w.Code, http.StatusCreated, w.Body.String())
	}
	if got := float64(clubs.created[0].MemberShipFee); got != 12.5 {
		t.Errorf("fee: got %v, want 12.5", got)
	}
}

func TestCreateClubMissingName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/addClub", asCaller("manager@example.com"), CreateClub(&fakeClubs{}))

	w := postJSON(r, "/addClub", `{"memberShipFee":10}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetClubBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/clubs/:id", GetClub(&fakeClubs{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clubs/not-hex", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetClubNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/clubs/:id", GetClub(&fakeClubs{err: store.ErrNotFound}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clubs/"+primitive.NewObjectID().Hex(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestFilteredClubsPassesQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clubs := &fakeClubs{}
	r := gin.New()
	r.GET("/filteredClubs", FilteredClubs(clubs))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/filteredClubs?clubType=games&search=chess", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	if clubs.filteredArgs != [2]string{"games", "chess"} {
		t.Errorf("filter args: %v", clubs.filteredArgs)
	}
	// An empty result set must serialize as [] rather than null.
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body: %s", w.Body.String())
	}
}

func TestSetClubStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clubs := &fakeClubs{}
	r := gin.New()
	r.PATCH("/clubs/:id/status", SetClubStatus(clubs))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/clubs/"+primitive.NewObjectID().Hex()+"/status",
		strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
	if clubs.statusSet != models.ClubApproved {
		t.Errorf("status set: got %q, want %q", clubs.statusSet, models.ClubApproved)
	}
}
