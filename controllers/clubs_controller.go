package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/clubnest/club-nest-go/models"
	store "github.com/clubnest/club-nest-go/store"
)

// ClubStore is the slice of the clubs store these handlers need.
type ClubStore interface {
	Create(ctx context.Context, managerEmail string, in store.ClubInput) (*models.Club, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Club, error)
	List(ctx context.Context, managerEmail string, status models.ClubStatus) ([]models.Club, error)
	Filtered(ctx context.Context, category, search string) ([]models.Club, error)
	Update(ctx context.Context, id primitive.ObjectID, in store.ClubInput) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClubStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ---------------- CREATE ----------------
// CreateClub registers a new club for the calling manager; it opens in
// pending status awaiting admin review.
func CreateClub(clubs ClubStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input store.ClubInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		club, err := clubs.Create(ctx, callerEmail(c), input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create club"})
			return
		}
		c.JSON(http.StatusCreated, club)
	}
}

// ---------------- LIST ----------------
func ListClubs(clubs ClubStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := clubs.List(ctx, c.Query("email"), models.ClubStatus(c.Query("status")))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch clubs"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ---------------- GET ----------------
func GetClub(clubs ClubStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		club, err := clubs.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch club"})
			return
		}
		c.JSON(http.StatusOK, club)
	}
}

// ---------------- FILTERED ----------------
// FilteredClubs is the public browse endpoint: approved clubs only, with
// optional case-insensitive category and name filters.
func FilteredClubs(clubs ClubStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := clubs.Filtered(ctx, c.Query("clubType"), c.Query("search"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch clubs"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ---------------- EDIT ----------------
// EditClub applies an update; the club returns to pending review.
func EditClub(clubs ClubStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
			return
		}

		var input store.ClubInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := clubs.Update(ctx, id, input); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update club"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "club updated"})
	}
}

// ---------------- STATUS ----------------
// SetClubStatus is the admin review decision.
func SetClubStatus(clubs ClubStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
			return
		}

		var input struct {
			Status models.ClubStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := clubs.SetStatus(ctx, id, input.Status); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update club"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "club status updated"})
	}
}

// ---------------- DELETE ----------------
func DeleteClub(clubs ClubStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := clubs.Delete(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete club"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "club deleted", "id": id.Hex()})
	}
}
